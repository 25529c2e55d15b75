package domain

import "context"

// Entry is the caller-facing shape of one audit record.
type Entry struct {
	ActorID    string
	ActorRole  string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
	IPAddress  string
}

type Service interface {
	// Record persists an audit entry. Failures are returned but callers
	// treat auditing as best-effort alongside the primary operation.
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}
