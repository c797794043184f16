package services

import (
	"context"
	"fmt"

	"aebox-api/internal/config"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// BrevoService sends notification emails through the Brevo API
type BrevoService struct {
	client    *brevo.APIClient
	fromEmail string
	fromName  string
}

// NewBrevoService creates a new Brevo service instance
func NewBrevoService() *BrevoService {
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", config.AppConfig.BrevoAPIKey)
	return &BrevoService{
		client:    brevo.NewAPIClient(cfg),
		fromEmail: config.AppConfig.BrevoFromEmail,
		fromName:  config.AppConfig.BrevoFromName,
	}
}

// Send sends a plain-text email
func (s *BrevoService) Send(to, subject, body string) error {
	email := brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  s.fromName,
			Email: s.fromEmail,
		},
		To: []brevo.SendSmtpEmailTo{
			{Email: to},
		},
		Subject:     subject,
		TextContent: body,
	}

	if _, _, err := s.client.TransactionalEmailsApi.SendTransacEmail(context.Background(), email); err != nil {
		return fmt.Errorf("brevo API error: %w", err)
	}
	return nil
}
