package services

import (
	"context"
	"fmt"

	"clubportal/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService backed by the given mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendRegistrationConfirmed(_ context.Context, data *domain.RegistrationConfirmedEmailData) error {
	subject, html, text, err := s.renderer.Render("registration_confirmed", data)
	if err != nil {
		return fmt.Errorf("render registration_confirmed: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send registration_confirmed: %w", err)
	}
	return nil
}
