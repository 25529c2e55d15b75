package authorization

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds a casbin enforcer backed by the casbin_rule table and
// seeds the base role capabilities when missing.
func NewEnforcer(db *gorm.DB) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func seedPolicies(enforcer *casbin.Enforcer) error {
	policies := [][]string{
		{roleSubject(RoleAdmin), ObjectContract, ActionContractCreate},
		{roleSubject(RoleAdmin), ObjectContract, ActionContractEdit},
		{roleSubject(RoleAdmin), ObjectContract, ActionContractDelete},
		{roleSubject(RoleAdmin), ObjectContract, ActionContractSubmit},
		{roleSubject(RoleAdmin), ObjectContract, ActionContractApprove},
		{roleSubject(RoleAdmin), ObjectContract, ActionContractReject},
		{roleSubject(RoleAdmin), ObjectTemplate, ActionTemplateRead},
		{roleSubject(RoleAdmin), ObjectTemplate, ActionTemplateManage},
		{roleSubject(RoleAdmin), ObjectSignature, ActionSignatureRemove},
		{roleSubject(RoleAdmin), ObjectReference, ActionReferenceRead},
		{roleSubject(RoleAdmin), ObjectReference, ActionReferenceManage},
		{roleSubject(RoleAdmin), ObjectReport, ActionReportExport},

		{roleSubject(RoleRepresentative), ObjectContract, ActionContractCreate},
		{roleSubject(RoleRepresentative), ObjectContract, ActionContractEdit},
		{roleSubject(RoleRepresentative), ObjectContract, ActionContractDelete},
		{roleSubject(RoleRepresentative), ObjectContract, ActionContractSubmit},
		{roleSubject(RoleRepresentative), ObjectTemplate, ActionTemplateRead},
		{roleSubject(RoleRepresentative), ObjectReference, ActionReferenceRead},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}

func roleSubject(role string) string { return "role:" + role }
