package domain

import (
	"context"
	"time"
)

// Announcement is a club-wide notice shown on the dashboard.
// swagger:model Announcement
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementRepository defines the interface for announcement storage.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	List(ctx context.Context) ([]*Announcement, error)
	Update(ctx context.Context, id, title, body string) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementService defines announcement operations. Create, Update, and
// Delete are admin-only; List is public.
type AnnouncementService interface {
	Create(ctx context.Context, title, body string) (*Announcement, error)
	List(ctx context.Context) ([]*Announcement, error)
	Update(ctx context.Context, id, title, body string) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}
