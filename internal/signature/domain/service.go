package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrSlotNotFound   = errors.New("signature_slot_not_found")
	ErrAlreadySigned  = errors.New("signature_already_signed")
	ErrInvalidImage   = errors.New("invalid_signature_image")
	ErrInvalidDocType = errors.New("invalid_document_type")
)

// MarkSignedRequest carries the captured signature for one slot.
type MarkSignedRequest struct {
	SlotID      string
	ImageData   []byte
	ContentType string
	SignerName  string
	SignerCPF   string
	RemoteAddr  string
}

// AddDocumentRequest attaches an identity document to a contract.
type AddDocumentRequest struct {
	ContractID  snowflake.ID
	DocType     string
	Data        []byte
	ContentType string
}

type Service interface {
	// EnsureSlotRecords upserts pending rows for every slot referenced by
	// the refs. Existing rows, signed or not, are left untouched.
	EnsureSlotRecords(ctx context.Context, contractID snowflake.ID, refs []SlotRef) error

	ListSlots(ctx context.Context, contractID snowflake.ID) ([]SignatureSlot, error)
	GetSlot(ctx context.Context, slotID string) (*SignatureSlot, error)

	// BuildSignatureLinks returns one public signing URL per slot of the
	// contract.
	BuildSignatureLinks(ctx context.Context, contractID snowflake.ID) ([]SlotLink, error)

	// MarkSigned stores the signature image and flips the slot from
	// pending to signed. A slot already signed returns ErrAlreadySigned;
	// the stored image is never overwritten.
	MarkSigned(ctx context.Context, req MarkSignedRequest) (*SignatureSlot, error)

	// RemoveSignature deletes the slot record so the placeholder renders
	// as pending again.
	RemoveSignature(ctx context.Context, slotID string) error

	AddDocument(ctx context.Context, req AddDocumentRequest) (*UploadedDocument, error)
	ListDocuments(ctx context.Context, contractID snowflake.ID) ([]UploadedDocument, error)

	// AllSigned reports whether the contract has at least one slot and
	// every slot is signed.
	AllSigned(ctx context.Context, contractID snowflake.ID) (bool, error)
}
