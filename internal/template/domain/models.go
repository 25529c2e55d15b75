package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Visibility controls who may expand a template into a contract.
type Visibility string

const (
	VisibilityAdmin Visibility = "admin"
	VisibilityAll   Visibility = "all"
)

// ContractTemplate is a reusable document body carrying variable tokens.
// Once expanded into a contract the copy has no further link back.
type ContractTemplate struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Content     string       `gorm:"type:text;not null;default:''" json:"content"`
	Visibility  Visibility   `gorm:"type:text;not null;default:'all'" json:"visibility"`
	AuthorID    snowflake.ID `gorm:"not null" json:"author_id"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ContractTemplate) TableName() string { return "contract_templates" }
