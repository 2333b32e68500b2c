package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"clubportal/internal/domain"
)

type glimpseService struct {
	repo      domain.GlimpseRepository
	eventRepo domain.EventRepository
	blobs     domain.BlobStore
}

// NewGlimpseService creates a GlimpseService. blobs may be nil, in which case
// Upload is rejected (list/delete of existing records still work).
func NewGlimpseService(repo domain.GlimpseRepository, eventRepo domain.EventRepository, blobs domain.BlobStore) domain.GlimpseService {
	return &glimpseService{repo: repo, eventRepo: eventRepo, blobs: blobs}
}

func (s *glimpseService) Upload(ctx context.Context, eventID, filename, contentType, caption string, body io.Reader, contentLength int64) (*domain.Glimpse, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" || strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: event id and filename are required", domain.ErrInvalidInput)
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store not configured")
	}
	if !domain.ValidateImageType(contentType, filename) {
		return nil, fmt.Errorf("%w: unsupported image type", domain.ErrInvalidInput)
	}
	if contentLength > domain.MaxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, domain.MaxImageSize)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if contentType == "" {
		contentType = domain.ContentTypeForFilename(filename)
	}
	url, err := s.blobs.Upload(ctx, domain.GlimpseKey(eventID, filename), contentType, body, contentLength)
	if err != nil {
		return nil, fmt.Errorf("upload glimpse image: %w", err)
	}

	g := &domain.Glimpse{
		EventID:  eventID,
		ImageURL: url,
		Caption:  strings.TrimSpace(caption),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create glimpse: %w", err)
	}
	return g, nil
}

func (s *glimpseService) ListByEventID(ctx context.Context, eventID string) ([]*domain.Glimpse, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	items, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list glimpses: %w", err)
	}
	return items, nil
}

func (s *glimpseService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete glimpse: %w", err)
	}
	return nil
}
