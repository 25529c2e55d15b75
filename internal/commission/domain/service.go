package domain

import (
	"context"
	"errors"
)

type CreateRequest struct {
	Name           string  `json:"name"`
	Percentage     float64 `json:"percentage"`
	PaymentDetails string  `json:"payment_details"`
	Formula        string  `json:"formula"`
}

// PreviewRequest carries the contract amounts a commission is computed from.
// Amounts are in centavos.
type PreviewRequest struct {
	TableID     string `json:"table_id"`
	TotalAmount int64  `json:"total_amount"`
}

type PreviewResponse struct {
	TableID          string  `json:"table_id"`
	TotalAmount      int64   `json:"total_amount"`
	CommissionAmount int64   `json:"commission_amount"`
	Percentage       float64 `json:"percentage"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CommissionTable, error)
	List(ctx context.Context) ([]CommissionTable, error)
	GetByID(ctx context.Context, id string) (*CommissionTable, error)
	// Preview evaluates the table against a contract total without
	// persisting anything.
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
}

var (
	ErrInvalidID         = errors.New("invalid_commission_table_id")
	ErrInvalidName       = errors.New("invalid_commission_table_name")
	ErrInvalidPercentage = errors.New("invalid_commission_percentage")
	ErrInvalidFormula    = errors.New("invalid_commission_formula")
	ErrNotFound          = errors.New("commission_table_not_found")
)
