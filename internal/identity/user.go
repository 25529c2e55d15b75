package identity

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a representative or administrator account. Authentication happens
// upstream; this row carries the role consulted by authorization.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Email        string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash *string      `gorm:"type:text" json:"-"`
	Role         string       `gorm:"type:text;not null;default:'representative'" json:"role"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
