package domain

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// MaxImageSize is the maximum allowed upload size for images (10MB).
const MaxImageSize = 10 * 1024 * 1024

// Allowed image MIME types and extensions for event images and glimpses.
var (
	allowedImageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
	}
	allowedImageExtensions = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".gif":  "image/gif",
	}
)

// ValidateImageType reports whether the content type and/or extension are allowed.
func ValidateImageType(contentType, filename string) bool {
	if contentType != "" {
		if _, ok := allowedImageTypes[strings.ToLower(contentType)]; ok {
			return true
		}
	}
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		if _, ok := allowedImageExtensions[ext]; ok {
			return true
		}
	}
	return false
}

// ContentTypeForFilename returns the MIME type for an image filename extension.
func ContentTypeForFilename(filename string) string {
	if ct, ok := allowedImageExtensions[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// GlimpseKey returns the object key for a glimpse image: glimpses/{event_id}/{filename}.
func GlimpseKey(eventID, filename string) string {
	return path.Join("glimpses", eventID, path.Base(filename))
}

// Glimpse is a photo from a past event, hosted in the blob store.
// swagger:model Glimpse
type Glimpse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GlimpseRepository defines the interface for glimpse storage.
type GlimpseRepository interface {
	Create(ctx context.Context, g *Glimpse) error
	ListByEventID(ctx context.Context, eventID string) ([]*Glimpse, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore is the port for hosted images (infrastructure adapter: S3).
type BlobStore interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// GlimpseService defines glimpse operations. Upload and Delete are admin-only.
type GlimpseService interface {
	// Upload stores the image in the blob store and records a glimpse row for
	// the event.
	Upload(ctx context.Context, eventID, filename, contentType, caption string, body io.Reader, contentLength int64) (*Glimpse, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Glimpse, error)
	Delete(ctx context.Context, id string) error
}
