package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubportal/internal/domain"
)

const maxEventCapacity = 100_000

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, title, description string, startTime, endTime time.Time, maxCapacity int, eventType, imageURL string) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if maxCapacity <= 0 {
		return nil, fmt.Errorf("%w: max_capacity must be a positive integer", domain.ErrInvalidInput)
	}
	if maxCapacity > maxEventCapacity {
		return nil, fmt.Errorf("%w: max_capacity cannot exceed %d", domain.ErrInvalidInput, maxEventCapacity)
	}
	if !endTime.IsZero() && endTime.Before(startTime) {
		return nil, fmt.Errorf("%w: end_time must not precede start_time", domain.ErrInvalidInput)
	}

	event := &domain.Event{
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
		Status:      domain.EventStatusOpen,
		Type:        strings.TrimSpace(eventType),
		ImageURL:    strings.TrimSpace(imageURL),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update applies admin edits. Lowering max_capacity below the current count
// is accepted: no new registrations will be admitted (the live capacity check
// still holds), but existing confirmed registrations stay.
func (s *eventService) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if upd.MaxCapacity != nil && *upd.MaxCapacity <= 0 {
		return nil, fmt.Errorf("%w: max_capacity must be a positive integer", domain.ErrInvalidInput)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *upd.Status)
	}
	event, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteCascade(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if err := s.eventRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
