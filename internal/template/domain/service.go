package domain

import (
	"context"
	"errors"
)

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Visibility  string `json:"visibility"`
}

type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Visibility  *string `json:"visibility"`
}

type ListRequest struct {
	// IncludeAdminOnly widens the listing to admin-restricted templates.
	IncludeAdminOnly bool
}

type Service interface {
	Create(ctx context.Context, authorID string, req CreateRequest) (*ContractTemplate, error)
	List(ctx context.Context, req ListRequest) ([]ContractTemplate, error)
	GetByID(ctx context.Context, id string) (*ContractTemplate, error)
	Update(ctx context.Context, req UpdateRequest) (*ContractTemplate, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID         = errors.New("invalid_template_id")
	ErrInvalidName       = errors.New("invalid_template_name")
	ErrInvalidVisibility = errors.New("invalid_template_visibility")
	ErrNameTaken         = errors.New("template_name_taken")
	ErrNotFound          = errors.New("template_not_found")
)
