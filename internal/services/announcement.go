package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clubportal/internal/domain"
)

type announcementService struct {
	repo domain.AnnouncementRepository
}

func NewAnnouncementService(repo domain.AnnouncementRepository) domain.AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) Create(ctx context.Context, title, body string) (*domain.Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	a := &domain.Announcement{Title: title, Body: strings.TrimSpace(body)}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context) ([]*domain.Announcement, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

func (s *announcementService) Update(ctx context.Context, id, title, body string) (*domain.Announcement, error) {
	title = strings.TrimSpace(title)
	if strings.TrimSpace(id) == "" || title == "" {
		return nil, fmt.Errorf("%w: id and title are required", domain.ErrInvalidInput)
	}
	a, err := s.repo.Update(ctx, id, title, strings.TrimSpace(body))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
