package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clubportal/internal/domain"
)

type inquiryService struct {
	repo domain.InquiryRepository
}

func NewInquiryService(repo domain.InquiryRepository) domain.InquiryService {
	return &inquiryService{repo: repo}
}

func (s *inquiryService) Submit(ctx context.Context, name, email, message string) (*domain.Inquiry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	message = strings.TrimSpace(message)
	if name == "" || message == "" {
		return nil, fmt.Errorf("%w: name and message are required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	in := &domain.Inquiry{Name: name, Email: email, Message: message}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return in, nil
}

func (s *inquiryService) List(ctx context.Context) ([]*domain.Inquiry, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return items, nil
}

func (s *inquiryService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return nil
}
