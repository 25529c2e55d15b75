package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is the purchasing party referenced by contracts and used as the
// source of document variable bindings.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null;default:''" json:"email"`
	Phone     string       `gorm:"type:text;not null;default:''" json:"phone"`
	CpfCnpj   string       `gorm:"type:text;not null;default:''" json:"cpf_cnpj"`
	Address   string       `gorm:"type:text;not null;default:''" json:"address"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
