package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

// Event lifecycle states. Full is derived from the capacity counter; Closed
// and Completed are set by admins and are terminal for registration.
const (
	EventStatusOpen      EventStatus = "Open"
	EventStatusFull      EventStatus = "Full"
	EventStatusClosed    EventStatus = "Closed"
	EventStatusCompleted EventStatus = "Completed"
)

// Valid reports whether s is one of the known event states.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusOpen, EventStatusFull, EventStatusClosed, EventStatusCompleted:
		return true
	}
	return false
}

// AcceptsRegistrations reports whether the status permits new registrations
// (capacity permitting).
func (s EventStatus) AcceptsRegistrations() bool {
	return s == EventStatusOpen || s == EventStatusFull
}

// Event represents a club event with bounded capacity.
// swagger:model Event
type Event struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	MaxCapacity  int         `json:"max_capacity"`
	CurrentCount int         `json:"current_count"`
	Status       EventStatus `json:"status"`
	Type         string      `json:"type,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// RemainingCapacity returns max_capacity minus the confirmed count, floored at 0.
func (e *Event) RemainingCapacity() int {
	if n := e.MaxCapacity - e.CurrentCount; n > 0 {
		return n
	}
	return 0
}

// EventUpdate carries the admin-editable event fields. Nil pointers leave the
// column unchanged. CurrentCount is deliberately absent: only the registration
// engine mutates the counter.
type EventUpdate struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	MaxCapacity *int
	Status      *EventStatus
	Type        *string
	ImageURL    *string
}

// EventRepository defines the interface for event storage.
//
// IncrementCount and DecrementCount are the only writers of current_count.
// Both are atomic single-statement updates: IncrementCount succeeds only when
// the event still has capacity and its status accepts registrations, flipping
// the status to Full when the new count reaches max_capacity. It returns
// ErrEventFull, ErrRegistrationClosed, or ErrNotFound when the guard rejects
// the update. DecrementCount floors the count at 0 and reopens a Full event;
// it never overrides an admin-set Closed or Completed status.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	DeleteCascade(ctx context.Context, id string) error
	IncrementCount(ctx context.Context, id string) (*Event, error)
	DecrementCount(ctx context.Context, id string) (*Event, error)
}

// EventService defines admin-facing event lifecycle operations.
type EventService interface {
	Create(ctx context.Context, title, description string, startTime, endTime time.Time, maxCapacity int, eventType, imageURL string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	// DeleteCascade removes the event and all its registrations and glimpses.
	// Destructive and irreversible; callers must pass an explicit confirmation.
	DeleteCascade(ctx context.Context, id string) error
}
