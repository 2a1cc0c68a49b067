package services

import (
	"context"
	"fmt"

	"evalboard/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService that renders templates and hands
// them to the mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendWelcome(ctx context.Context, data domain.WelcomeEmailData) error {
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}
