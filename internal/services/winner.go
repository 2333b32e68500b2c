package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubportal/internal/domain"
)

type winnerService struct {
	repo domain.WinnerRepository
}

func NewWinnerService(repo domain.WinnerRepository) domain.WinnerService {
	return &winnerService{repo: repo}
}

func (s *winnerService) Create(ctx context.Context, eventName string, eventDate time.Time, first, second, third string) (*domain.Winner, error) {
	eventName = strings.TrimSpace(eventName)
	first = strings.TrimSpace(first)
	if eventName == "" || first == "" {
		return nil, fmt.Errorf("%w: event_name and first_place are required", domain.ErrInvalidInput)
	}
	w := &domain.Winner{
		EventName:   eventName,
		EventDate:   eventDate,
		FirstPlace:  first,
		SecondPlace: strings.TrimSpace(second),
		ThirdPlace:  strings.TrimSpace(third),
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create winner: %w", err)
	}
	return w, nil
}

func (s *winnerService) List(ctx context.Context) ([]*domain.Winner, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return items, nil
}

func (s *winnerService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete winner: %w", err)
	}
	return nil
}
