package domain

import (
	"context"
	"time"
)

// Inquiry is a message submitted through the public contact form.
// swagger:model Inquiry
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryRepository defines the interface for inquiry storage.
type InquiryRepository interface {
	Create(ctx context.Context, in *Inquiry) error
	List(ctx context.Context) ([]*Inquiry, error)
	Delete(ctx context.Context, id string) error
}

// InquiryService defines inquiry operations. Submit is public; List and
// Delete are admin-only.
type InquiryService interface {
	Submit(ctx context.Context, name, email, message string) (*Inquiry, error)
	List(ctx context.Context) ([]*Inquiry, error)
	Delete(ctx context.Context, id string) error
}
