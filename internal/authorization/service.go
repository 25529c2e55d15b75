package authorization

import "context"

// Service answers "may this actor perform this action on this object kind".
// Ownership and lifecycle-state checks stay in the owning domain services;
// this layer only decides role capability.
type Service interface {
	Authorize(ctx context.Context, actor string, object string, action string) error
}

// Object kinds.
const (
	ObjectContract  = "contract"
	ObjectTemplate  = "template"
	ObjectSignature = "signature"
	ObjectReference = "reference"
	ObjectReport    = "report"
)

// Actions.
const (
	ActionContractCreate  = "contract.create"
	ActionContractEdit    = "contract.edit"
	ActionContractDelete  = "contract.delete"
	ActionContractSubmit  = "contract.submit"
	ActionContractApprove = "contract.approve"
	ActionContractReject  = "contract.reject"
	ActionTemplateRead    = "template.read"
	ActionTemplateManage  = "template.manage"
	ActionSignatureRemove = "signature.remove"
	ActionReferenceRead   = "reference.read"
	ActionReferenceManage = "reference.manage"
	ActionReportExport    = "report.export"
)

// Roles.
const (
	RoleAdmin          = "admin"
	RoleRepresentative = "representative"
)
