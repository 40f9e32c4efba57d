package services

import (
	"context"
	"fmt"

	"scheduler/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendDailyDigest sends the daily digest email using the "digest" template and the given data.
func (s *emailService) SendDailyDigest(ctx context.Context, to string, data *domain.DigestEmailData) error {
	if data == nil {
		return fmt.Errorf("digest data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("digest", data)
	if err != nil {
		return fmt.Errorf("failed to render digest template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}
	return nil
}
