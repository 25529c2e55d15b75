package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/audit/domain"
	clientdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/client/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/clock"
	commissiondomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/commission/domain"
	consortiumdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/consortium/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/contract/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/events"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
	sigdomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/internal/signature/render"
	templatedomain "github.com/thekiqdev/CredCar-Finance-sub001/internal/template/domain"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db/pagination"
)

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Outbox      *events.Outbox
	Audit       auditdomain.Service
	Signatures  sigdomain.Service
	Renderer    render.Renderer
	Templates   templatedomain.Service
	Clients     clientdomain.Service
	Consortium  consortiumdomain.Service
	Commissions commissiondomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	outbox      *events.Outbox
	audit       auditdomain.Service
	signatures  sigdomain.Service
	renderer    render.Renderer
	templates   templatedomain.Service
	clients     clientdomain.Service
	consortium  consortiumdomain.Service
	commissions commissiondomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("contract.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		outbox:      p.Outbox,
		audit:       p.Audit,
		signatures:  p.Signatures,
		renderer:    p.Renderer,
		templates:   p.Templates,
		clients:     p.Clients,
		consortium:  p.Consortium,
		commissions: p.Commissions,
	}
}

func (s *Service) Create(ctx context.Context, actor identity.Actor, req domain.CreateRequest) (*domain.Contract, error) {
	if req.TotalAmount <= 0 || req.Installments < 0 {
		return nil, domain.ErrInvalidAmount
	}

	tmpl, err := s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if tmpl.Visibility == templatedomain.VisibilityAdmin && !actor.IsAdmin() {
		return nil, domain.ErrTemplateForbidden
	}

	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	table, err := s.commissions.GetByID(ctx, req.CommissionTableID)
	if err != nil {
		return nil, err
	}

	var (
		quota *consortiumdomain.Quota
		group *consortiumdomain.Group
	)
	if strings.TrimSpace(req.QuotaID) != "" {
		quota, err = s.consortium.GetQuota(ctx, req.QuotaID)
		if err != nil {
			return nil, err
		}
		group, err = s.consortium.GetGroup(ctx, quota.GroupID.String())
		if err != nil {
			return nil, err
		}
	}

	content := templatedomain.Expand(tmpl.Content, s.bindings(client, group, quota, table))

	now := s.clock.Now()
	id := s.genID.Generate()
	record := &domain.Contract{
		ID:                id,
		Code:              "CT-" + id.String(),
		ClientID:          client.ID,
		RepresentativeID:  actor.UserID,
		CommissionTableID: table.ID,
		TotalAmount:       req.TotalAmount,
		RemainingAmount:   req.TotalAmount,
		Installments:      req.Installments,
		Status:            domain.StatusPending,
		Content:           content,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if quota != nil {
		record.GroupID = &group.ID
		record.QuotaID = &quota.ID
		if err := s.consortium.Reserve(ctx, quota.ID, id); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		if quota != nil {
			if relErr := s.consortium.Release(ctx, quota.ID, id); relErr != nil {
				s.log.Warn("quota stuck in reserved after failed create",
					zap.String("quota_id", quota.ID.String()),
					zap.Error(relErr),
				)
			}
		}
		return nil, err
	}

	if err := s.signatures.EnsureSlotRecords(ctx, id, sigdomain.ExtractSlots(content)); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, "contract.create", record.ID, map[string]any{"code": record.Code})
	return record, nil
}

func (s *Service) List(ctx context.Context, actor identity.Actor, req domain.ListRequest) (domain.ListResponse, error) {
	tx := s.db.WithContext(ctx).Model(&domain.Contract{})
	if !actor.IsAdmin() {
		tx = tx.Where("representative_id = ?", actor.UserID)
	}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return domain.ListResponse{}, domain.ErrInvalidStatus
		}
		tx = tx.Where("status = ?", status)
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		tx = tx.Where("lower(code) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return domain.ListResponse{}, err
	}

	if cursor := req.Cursor(); cursor > 0 {
		tx = tx.Where("id < ?", cursor)
	}
	limit := req.Limit()

	var contracts []domain.Contract
	if err := tx.Order("id DESC").Limit(limit + 1).Find(&contracts).Error; err != nil {
		return domain.ListResponse{}, err
	}

	resp := domain.ListResponse{Contracts: contracts}
	resp.TotalSize = total
	if len(contracts) > limit {
		resp.Contracts = contracts[:limit]
		resp.NextPageToken = pagination.EncodeToken(int64(contracts[limit-1].ID))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, actor identity.Actor, id string) (*domain.Contract, error) {
	record, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	// Representatives only ever see their own book.
	if !actor.IsAdmin() && record.RepresentativeID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (s *Service) UpdateContent(ctx context.Context, actor identity.Actor, req domain.UpdateContentRequest) (*domain.Contract, error) {
	record, err := s.GetByID(ctx, actor, req.ID)
	if err != nil {
		return nil, err
	}
	if !record.Status.Editable() {
		return nil, domain.ErrNotEditable
	}
	if record.RepresentativeID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrNotOwner
	}

	res := s.db.WithContext(ctx).
		Model(&domain.Contract{}).
		Where("id = ? AND version = ?", record.ID, req.Version).
		Updates(map[string]any{
			"content":    req.Content,
			"version":    req.Version + 1,
			"updated_at": s.clock.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrVersionConflict
	}

	// Slots already signed keep their records; only new tokens gain rows.
	if err := s.signatures.EnsureSlotRecords(ctx, record.ID, sigdomain.ExtractSlots(req.Content)); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, "contract.update_content", record.ID, map[string]any{"version": req.Version + 1})
	return s.fetch(ctx, req.ID)
}

func (s *Service) Submit(ctx context.Context, actor identity.Actor, id string) (*domain.Contract, error) {
	record, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.Submittable() {
		return nil, domain.ErrNotSubmittable
	}

	if err := s.transition(ctx, record, domain.StatusUnderReview, domain.ErrNotSubmittable, map[string]any{"rejection_reason": ""}); err != nil {
		return nil, err
	}

	record.Status = domain.StatusUnderReview
	s.publish(ctx, events.EventContractSubmitted, record, "")
	s.recordAudit(ctx, actor, "contract.submit", record.ID, nil)
	return s.fetch(ctx, id)
}

func (s *Service) Approve(ctx context.Context, reviewer identity.Actor, id string) (*domain.Contract, error) {
	record, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.Reviewable() {
		return nil, domain.ErrNotReviewable
	}

	if err := s.transition(ctx, record, domain.StatusApproved, domain.ErrNotReviewable, nil); err != nil {
		return nil, err
	}

	if record.QuotaID != nil {
		if err := s.consortium.Occupy(ctx, *record.QuotaID, record.ID); err != nil {
			s.log.Warn("quota not occupied on approval",
				zap.String("contract_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}

	if complete, err := s.signatures.AllSigned(ctx, record.ID); err == nil && !complete {
		s.log.Warn("contract approved with pending signatures",
			zap.String("contract_id", record.ID.String()),
			zap.String("code", record.Code),
		)
	}

	record.Status = domain.StatusApproved
	s.publish(ctx, events.EventContractApproved, record, "approved:"+record.ID.String())
	s.recordAudit(ctx, reviewer, "contract.approve", record.ID, nil)
	return s.fetch(ctx, id)
}

func (s *Service) Reject(ctx context.Context, reviewer identity.Actor, id, reason string) (*domain.Contract, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	record, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.Reviewable() {
		return nil, domain.ErrNotReviewable
	}

	if err := s.transition(ctx, record, domain.StatusRejected, domain.ErrNotReviewable, map[string]any{"rejection_reason": reason}); err != nil {
		return nil, err
	}

	record.Status = domain.StatusRejected
	s.publish(ctx, events.EventContractRejected, record, "")
	s.recordAudit(ctx, reviewer, "contract.reject", record.ID, map[string]any{"reason": reason})
	return s.fetch(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	record, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return err
	}
	if !record.Status.Deletable() {
		return domain.ErrNotDeletable
	}
	if record.RepresentativeID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrNotOwner
	}

	if record.QuotaID != nil {
		if err := s.consortium.Release(ctx, *record.QuotaID, record.ID); err != nil &&
			!errors.Is(err, consortiumdomain.ErrQuotaNotHeld) {
			return err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&sigdomain.SignatureSlot{}, "contract_id = ?", record.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Contract{}, "id = ?", record.ID).Error
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventContractDeleted, record, "")
	s.recordAudit(ctx, actor, "contract.delete", record.ID, map[string]any{"code": record.Code})
	return nil
}

func (s *Service) Render(ctx context.Context, id string) (*domain.RenderedContract, error) {
	record, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	slots, err := s.signatures.ListSlots(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RenderedContract{
		Contract: record,
		HTML:     s.renderer.Render(record.Content, slots),
	}, nil
}

func (s *Service) fetch(ctx context.Context, id string) (*domain.Contract, error) {
	contractID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	var record domain.Contract
	if err := s.db.WithContext(ctx).First(&record, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// transition flips status with a compare-and-set on the current one, so two
// concurrent decisions cannot both land.
func (s *Service) transition(ctx context.Context, record *domain.Contract, to domain.Status, conflictErr error, extra map[string]any) error {
	updates := map[string]any{
		"status":     to,
		"updated_at": s.clock.Now(),
	}
	for key, value := range extra {
		updates[key] = value
	}

	res := s.db.WithContext(ctx).
		Model(&domain.Contract{}).
		Where("id = ? AND status = ?", record.ID, record.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return conflictErr
	}
	return nil
}

func (s *Service) bindings(
	client *clientdomain.Client,
	group *consortiumdomain.Group,
	quota *consortiumdomain.Quota,
	table *commissiondomain.CommissionTable,
) templatedomain.Bindings {
	b := templatedomain.Bindings{
		templatedomain.VarClientName:    client.Name,
		templatedomain.VarClientEmail:   client.Email,
		templatedomain.VarClientPhone:   client.Phone,
		templatedomain.VarClientCpfCnpj: sigdomain.FormatDocument(client.CpfCnpj),
		templatedomain.VarClientAddress: client.Address,
		templatedomain.VarTableName:     table.Name,
		templatedomain.VarTablePercent:  strconv.FormatFloat(table.Percentage, 'f', -1, 64) + "%",
		templatedomain.VarTableDetails:  table.PaymentDetails,
		templatedomain.VarCurrentDate:   s.clock.Now().Format("02/01/2006"),
	}
	if group != nil {
		b[templatedomain.VarGroupName] = group.Name
		b[templatedomain.VarGroupDesc] = group.Description
	}
	if quota != nil {
		b[templatedomain.VarQuotaNumber] = quota.Number
	}
	return b
}

func (s *Service) publish(ctx context.Context, eventType string, record *domain.Contract, dedupe string) {
	err := s.outbox.Publish(ctx, events.Event{
		Type:      eventType,
		Payload:   events.ContractPayload{ContractID: record.ID.String(), Code: record.Code, Status: string(record.Status)}.ToMap(),
		DedupeKey: dedupe,
	})
	if err != nil {
		s.log.Warn("outbox publish failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func (s *Service) recordAudit(ctx context.Context, actor identity.Actor, action string, targetID snowflake.ID, metadata map[string]any) {
	err := s.audit.Record(ctx, auditdomain.Entry{
		ActorID:    actor.UserID.String(),
		ActorRole:  actor.Role,
		Action:     action,
		TargetType: "contract",
		TargetID:   targetID.String(),
		Metadata:   metadata,
	})
	if err != nil {
		s.log.Warn("audit record failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
