package services

import (
	"context"
	"fmt"

	"venueops/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendConflictAlert sends the conflict alert email using the "conflict_alert"
// template and the given data.
func (s *emailService) SendConflictAlert(ctx context.Context, data *domain.ConflictAlertEmailData) error {
	if data == nil {
		return fmt.Errorf("conflict alert data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("conflict_alert", data)
	if err != nil {
		return fmt.Errorf("failed to render conflict_alert template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send conflict alert email: %w", err)
	}
	return nil
}
