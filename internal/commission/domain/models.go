package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CommissionTable is a named fee schedule applied to contracts. Formula is an
// optional expression evaluated against the contract totals; when empty the
// flat percentage applies.
type CommissionTable struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Percentage     float64      `gorm:"type:numeric(6,3);not null;default:0" json:"percentage"`
	PaymentDetails string       `gorm:"type:text;not null;default:''" json:"payment_details"`
	Formula        string       `gorm:"type:text;not null;default:''" json:"formula"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CommissionTable) TableName() string { return "commission_tables" }
