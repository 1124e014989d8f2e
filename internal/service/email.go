package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/frostlinehq/frostline/internal/model"
)

type EmailService struct {
	client        *resend.Client
	fromEmail     string
	dispatchEmail string
	audienceID    string
	isDev         bool
	appURL        string
	appName       string
}

func NewEmailService(apiKey, fromEmail, dispatchEmail, audienceID, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:        client,
		fromEmail:     fromEmail,
		dispatchEmail: dispatchEmail,
		audienceID:    audienceID,
		isDev:         isDev,
		appURL:        appURL,
		appName:       appName,
	}
}

func (s *EmailService) send(emailType, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", emailType, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", emailType, "to", to)
	}
	return err
}

// SendLeadNotification alerts dispatch about a new service request.
// Emergency leads get a distinct subject so inbox rules can page the
// on-call tech.
func (s *EmailService) SendLeadNotification(lead *model.Lead) error {
	subject, body := leadNotificationTemplate(lead, s.appName)
	return s.send("lead_notification", s.dispatchEmail, subject, body)
}

func (s *EmailService) SendMagicLinkEmail(email, token, name string) error {
	magicURL := fmt.Sprintf("%s/auth/magic-link/%s", s.appURL, token)
	subject, body := magicLinkEmailTemplate(magicURL, s.appName)
	return s.send("magic_link", email, subject, body)
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appName)
	return s.send("welcome", email, subject, body)
}

// SendMembershipReceipt confirms a completed Pro purchase.
func (s *EmailService) SendMembershipReceipt(email, name string) error {
	subject, body := membershipReceiptTemplate(name, s.appName)
	return s.send("membership_receipt", email, subject, body)
}

func (s *EmailService) SubscribeNewsletter(email string) error {
	if s.isDev {
		slog.Info("newsletter subscription (dev mode)", "email", email)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	if s.audienceID == "" {
		slog.Warn("newsletter subscription requested but no audience configured", "email", email)
		return nil
	}

	params := &resend.CreateContactRequest{
		Email:      email,
		AudienceId: s.audienceID,
	}

	_, err := s.client.Contacts.Create(params)
	if err != nil {
		slog.Warn("newsletter subscription failed", "error", err, "email", email)
		// Swallow errors to prevent email enumeration; duplicates and
		// invalid addresses land here too
		return nil
	}

	slog.Info("newsletter subscription successful", "email", email)
	return nil
}
