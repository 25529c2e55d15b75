package domain

import (
	"context"
	"errors"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db/pagination"
)

type CreateRequest struct {
	TemplateID        string `json:"template_id"`
	ClientID          string `json:"client_id"`
	QuotaID           string `json:"quota_id"`
	CommissionTableID string `json:"commission_table_id"`
	TotalAmount       int64  `json:"total_amount"`
	Installments      int    `json:"installments"`
}

// UpdateContentRequest replaces the contract document. Version is the
// version the caller last read; a mismatch means someone else saved first.
type UpdateContentRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Version int64  `json:"version"`
}

type ListRequest struct {
	pagination.Pagination
	Status string `form:"status"`
	Search string `form:"search"`
}

type ListResponse struct {
	pagination.PageInfo
	Contracts []Contract `json:"contracts"`
}

// RenderedContract is the print-ready view of a contract document.
type RenderedContract struct {
	Contract *Contract `json:"contract"`
	HTML     string    `json:"html"`
}

type Service interface {
	// Create expands the template into a new pending contract and, when a
	// quota is given, reserves it.
	Create(ctx context.Context, actor identity.Actor, req CreateRequest) (*Contract, error)

	// List returns the actor's contracts; admins see everyone's.
	List(ctx context.Context, actor identity.Actor, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (*Contract, error)

	// UpdateContent saves edited document content under optimistic
	// locking and refreshes the signing records for any new tokens.
	UpdateContent(ctx context.Context, actor identity.Actor, req UpdateContentRequest) (*Contract, error)

	// Submit moves a pending or rejected contract into review.
	Submit(ctx context.Context, actor identity.Actor, id string) (*Contract, error)
	// Approve settles a review in favor of the contract and occupies its
	// quota. Pending signatures do not block approval.
	Approve(ctx context.Context, reviewer identity.Actor, id string) (*Contract, error)
	// Reject hands the contract back to its representative with a reason.
	Reject(ctx context.Context, reviewer identity.Actor, id, reason string) (*Contract, error)

	// Delete removes a contract still in the representative's hands and
	// releases its quota.
	Delete(ctx context.Context, actor identity.Actor, id string) error

	// Render substitutes signature tokens with their visual blocks.
	Render(ctx context.Context, id string) (*RenderedContract, error)
}

var (
	ErrInvalidID         = errors.New("invalid_contract_id")
	ErrInvalidStatus     = errors.New("invalid_contract_status")
	ErrInvalidAmount     = errors.New("invalid_contract_amount")
	ErrNotFound          = errors.New("contract_not_found")
	ErrNotOwner          = errors.New("contract_not_owned")
	ErrNotEditable       = errors.New("contract_not_editable")
	ErrNotDeletable      = errors.New("contract_not_deletable")
	ErrNotSubmittable    = errors.New("contract_not_submittable")
	ErrNotReviewable     = errors.New("contract_not_reviewable")
	ErrReasonRequired    = errors.New("rejection_reason_required")
	ErrVersionConflict   = errors.New("contract_version_conflict")
	ErrTemplateForbidden = errors.New("template_not_available")
)
