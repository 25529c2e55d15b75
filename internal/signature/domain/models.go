package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type SlotStatus string

const (
	SlotPending SlotStatus = "pending"
	SlotSigned  SlotStatus = "signed"
)

// SlotRef is a signature placeholder parsed out of contract content. It
// carries only what the token itself declares.
type SlotRef struct {
	SlotID     string
	SignerName string
	SignerCPF  string
}

// SignatureSlot is the persisted signing record backing one placeholder.
// The slot identifier comes from the token, not from the row key, so the
// same placeholder maps to the same row across content edits.
type SignatureSlot struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id,string"`
	ContractID snowflake.ID `gorm:"index" json:"contract_id,string"`
	SlotID     string       `gorm:"uniqueIndex" json:"slot_id"`
	SignerName string       `json:"signer_name"`
	SignerCPF  string       `json:"signer_cpf"`
	Status     SlotStatus   `gorm:"index" json:"status"`
	ImageURL   string       `json:"image_url,omitempty"`
	SignedIP   string       `json:"signed_ip,omitempty"`
	SignedAt   *time.Time   `json:"signed_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (SignatureSlot) TableName() string { return "signature_slots" }

// UploadedDocument is an identity document attached during the client
// signing flow.
type UploadedDocument struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id,string"`
	ContractID snowflake.ID `gorm:"index" json:"contract_id,string"`
	DocType    string       `json:"doc_type"`
	FileURL    string       `json:"file_url"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (UploadedDocument) TableName() string { return "uploaded_documents" }

// SlotLink pairs a slot with its public signing URL.
type SlotLink struct {
	Slot SignatureSlot `json:"slot"`
	URL  string        `json:"url"`
}
