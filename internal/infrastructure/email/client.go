// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/InkVite/inkvite-go/internal/infrastructure/email/templates"
	"github.com/InkVite/inkvite-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendRSVPConfirmationEmail(toEmail string, props templates.RSVPConfirmationProps) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client:    resend.NewClient(config.ResendAPIKey),
		fromEmail: config.EmailFrom,
		fromName:  config.EmailFromName,
	}, nil
}

// SendRSVPConfirmationEmail composes and sends the RSVP confirmation to a guest.
func (c *ResendClient) SendRSVPConfirmationEmail(toEmail string, props templates.RSVPConfirmationProps) error {
	subject := fmt.Sprintf("Your RSVP for %s", props.EventTitle)

	content := templates.GetRSVPConfirmationContent(props)
	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: subject,
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send RSVP confirmation via Resend: %w", err)
	}

	return nil
}
