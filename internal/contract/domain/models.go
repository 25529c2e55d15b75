package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Contract is one sale of a consortium quota to a client. Content holds the
// expanded document text with signature tokens intact; Version guards
// concurrent content edits.
type Contract struct {
	ID                snowflake.ID  `gorm:"primaryKey" json:"id"`
	Code              string        `gorm:"type:text;not null;uniqueIndex" json:"code"`
	ClientID          snowflake.ID  `gorm:"not null;index" json:"client_id"`
	RepresentativeID  snowflake.ID  `gorm:"not null;index" json:"representative_id"`
	CommissionTableID snowflake.ID  `gorm:"not null" json:"commission_table_id"`
	GroupID           *snowflake.ID `json:"group_id,omitempty"`
	QuotaID           *snowflake.ID `json:"quota_id,omitempty"`
	TotalAmount       int64         `gorm:"not null;default:0" json:"total_amount"`
	RemainingAmount   int64         `gorm:"not null;default:0" json:"remaining_amount"`
	Installments      int           `gorm:"not null;default:0" json:"installments"`
	PaidInstallments  int           `gorm:"not null;default:0" json:"paid_installments"`
	Status            Status        `gorm:"type:text;not null;default:'pending';index" json:"status"`
	Content           string        `gorm:"type:text;not null;default:''" json:"content"`
	RejectionReason   string        `gorm:"type:text;not null;default:''" json:"rejection_reason,omitempty"`
	Version           int64         `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }
