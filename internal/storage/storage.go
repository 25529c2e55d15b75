package storage

import (
	"context"
	"errors"
)

// BlobStore persists uploaded binaries (signature images, identity
// documents) and returns a URL the application can serve or embed.
type BlobStore interface {
	// Save writes the blob under key and returns its public URL. The
	// write completes before any database row referencing the URL is
	// created; a row-write failure afterwards orphans the blob.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrInvalidKey  = errors.New("invalid_blob_key")
	ErrEmptyBlob   = errors.New("empty_blob")
	ErrTooLarge    = errors.New("blob_too_large")
	ErrUnsupported = errors.New("unsupported_content_type")
)
