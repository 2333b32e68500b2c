package domain

import (
	"context"
	"time"
)

// Winner records podium placements for a past event.
// swagger:model Winner
type Winner struct {
	ID          string    `json:"id"`
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	FirstPlace  string    `json:"first_place"`
	SecondPlace string    `json:"second_place,omitempty"`
	ThirdPlace  string    `json:"third_place,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WinnerRepository defines the interface for winner storage.
type WinnerRepository interface {
	Create(ctx context.Context, w *Winner) error
	List(ctx context.Context) ([]*Winner, error)
	Delete(ctx context.Context, id string) error
}

// WinnerService defines winner operations. Create and Delete are admin-only.
type WinnerService interface {
	Create(ctx context.Context, eventName string, eventDate time.Time, first, second, third string) (*Winner, error)
	List(ctx context.Context) ([]*Winner, error)
	Delete(ctx context.Context, id string) error
}
