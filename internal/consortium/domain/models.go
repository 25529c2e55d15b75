package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Group is one consortium group whose quotas are sold through contracts.
type Group struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Group) TableName() string { return "consortium_groups" }

// QuotaStatus is the allocation state of one quota.
type QuotaStatus string

const (
	QuotaAvailable QuotaStatus = "available"
	QuotaReserved  QuotaStatus = "reserved"
	QuotaOccupied  QuotaStatus = "occupied"
	QuotaCancelled QuotaStatus = "cancelled"
)

// Quota is one allocable unit within a group, assignable to at most one
// active contract.
type Quota struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	GroupID    snowflake.ID  `gorm:"not null;index" json:"group_id"`
	Number     string        `gorm:"type:text;not null" json:"number"`
	Status     QuotaStatus   `gorm:"type:text;not null;default:'available'" json:"status"`
	ContractID *snowflake.ID `json:"contract_id,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Quota) TableName() string { return "quotas" }
