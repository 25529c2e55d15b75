package domain

import (
	"context"
	"errors"

	"github.com/thekiqdev/CredCar-Finance-sub001/pkg/db/pagination"
)

type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	CpfCnpj string `json:"cpf_cnpj"`
	Address string `json:"address"`
}

type UpdateRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	CpfCnpj *string `json:"cpf_cnpj"`
	Address *string `json:"address"`
}

type ListRequest struct {
	pagination.Pagination
	Search string `form:"search"`
}

type ListResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, req UpdateRequest) (*Client, error)
}

var (
	ErrInvalidID       = errors.New("invalid_client_id")
	ErrInvalidName     = errors.New("invalid_client_name")
	ErrInvalidDocument = errors.New("invalid_client_document")
	ErrNotFound        = errors.New("client_not_found")
)
