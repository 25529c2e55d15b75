package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateQuotaRequest struct {
	GroupID string `json:"group_id"`
	Number  string `json:"number"`
}

type ListQuotasRequest struct {
	GroupID string `form:"group_id"`
	Status  string `form:"status"`
}

type Service interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)
	ListGroups(ctx context.Context) ([]Group, error)
	GetGroup(ctx context.Context, id string) (*Group, error)

	CreateQuota(ctx context.Context, req CreateQuotaRequest) (*Quota, error)
	ListQuotas(ctx context.Context, req ListQuotasRequest) ([]Quota, error)
	GetQuota(ctx context.Context, id string) (*Quota, error)

	// Reserve atomically takes an available quota for a contract.
	Reserve(ctx context.Context, quotaID, contractID snowflake.ID) error
	// Release returns a quota held by a contract to the available pool.
	Release(ctx context.Context, quotaID, contractID snowflake.ID) error
	// Occupy marks a reserved quota as definitively taken.
	Occupy(ctx context.Context, quotaID, contractID snowflake.ID) error
}

var (
	ErrInvalidGroupID   = errors.New("invalid_group_id")
	ErrInvalidQuotaID   = errors.New("invalid_quota_id")
	ErrInvalidName      = errors.New("invalid_group_name")
	ErrInvalidNumber    = errors.New("invalid_quota_number")
	ErrGroupNotFound    = errors.New("group_not_found")
	ErrQuotaNotFound    = errors.New("quota_not_found")
	ErrQuotaUnavailable = errors.New("quota_unavailable")
	ErrQuotaNotHeld     = errors.New("quota_not_held_by_contract")
	ErrDuplicateNumber  = errors.New("duplicate_quota_number")
)
