package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the state of a ledger row.
type RegistrationStatus string

// Registration states. Rows are never physically deleted except by cascading
// event deletion; cancellation flips the status.
const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration is one row of the registration ledger. The profile fields are
// a snapshot captured at registration time; later profile edits must not
// retroactively alter historical registrations.
// swagger:model Registration
type Registration struct {
	ID           string             `json:"registration_id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	UserEmail    string             `json:"user_email"`
	Year         string             `json:"year,omitempty"`
	Dept         string             `json:"dept,omitempty"`
	RollNo       string             `json:"roll_no,omitempty"`
	MobileNumber string             `json:"mobile_number,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Status       RegistrationStatus `json:"status"`
}

// RegistrationWithEvent bundles a registration with its event for member-facing lists.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationFilter narrows admin ledger queries. Zero values mean "any".
type RegistrationFilter struct {
	EventID string
	UserID  string
	Status  RegistrationStatus
}

// RegistrationRepository defines storage operations for the registration
// ledger. At most one confirmed row may exist per (event, user) pair; the
// store enforces this with a partial unique constraint, and Create maps a
// uniqueness violation to ErrAlreadyRegistered.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	HasConfirmed(ctx context.Context, eventID, userID string) (bool, error)
	// MarkCancelled flips the row to cancelled only if it is currently
	// confirmed, in a single guarded statement. It reports whether the flip
	// happened; false means the row was missing or already cancelled, so the
	// caller must not release a seat for it.
	MarkCancelled(ctx context.Context, id string) (bool, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	ListFiltered(ctx context.Context, filter RegistrationFilter, p PaginationParams) (regs []*Registration, total int, err error)
}

// RegistrationService is the registration engine: capacity-bounded,
// idempotent event sign-up with profile gating and atomic seat counting.
type RegistrationService interface {
	// Register validates inputs, gates on profile completeness, rejects
	// duplicates, checks status and capacity, inserts the confirmed ledger
	// row with a profile snapshot, and atomically increments the event count.
	Register(ctx context.Context, eventID, userID, userEmail string) (*Registration, error)
	// Cancel flips the registration to cancelled and restores one seat.
	// Cancelling an already-cancelled registration returns ErrAlreadyCancelled
	// and does not decrement the count again. Unless asAdmin is true, only the
	// registration's owner may cancel it.
	Cancel(ctx context.Context, registrationID, requesterID string, asAdmin bool) error
	ListMyRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
	ListFiltered(ctx context.Context, filter RegistrationFilter, p PaginationParams) ([]*Registration, int, error)
}
