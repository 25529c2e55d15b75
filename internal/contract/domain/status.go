package domain

// Status is the review and billing state of a contract.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusActive      Status = "active"
	StatusCompleted   Status = "completed"
	StatusInvoiced    Status = "invoiced"
	StatusCancelled   Status = "cancelled"
	StatusOverdue     Status = "overdue"
)

// Editable reports whether content and details may still change. Once a
// contract leaves the representative's hands it is frozen; a rejection
// hands it back.
func (s Status) Editable() bool {
	return s == StatusPending || s == StatusRejected
}

// Deletable mirrors Editable: only contracts still in the representative's
// hands can be removed.
func (s Status) Deletable() bool { return s.Editable() }

// Submittable reports whether the contract can enter review.
func (s Status) Submittable() bool {
	return s == StatusPending || s == StatusRejected
}

// Reviewable reports whether an admin decision applies.
func (s Status) Reviewable() bool { return s == StatusUnderReview }

var validStatuses = map[Status]bool{
	StatusPending:     true,
	StatusUnderReview: true,
	StatusApproved:    true,
	StatusRejected:    true,
	StatusActive:      true,
	StatusCompleted:   true,
	StatusInvoiced:    true,
	StatusCancelled:   true,
	StatusOverdue:     true,
}

// ParseStatus validates a raw status filter value.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, validStatuses[s]
}
