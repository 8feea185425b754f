package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"lostfound-backend/internal/config"
)

// EmailService sends claim-decision emails. Delivery is best effort; the
// in-app notification is the source of truth.
type EmailService interface {
	SendClaimApproved(ctx context.Context, toEmail, name, itemTitle string) error
	SendClaimRejected(ctx context.Context, toEmail, name, itemTitle, reason string) error
}

type emailService struct {
	client *resend.Client
	cfg    *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &emailService{client: client, cfg: cfg}
}

func (s *emailService) SendClaimApproved(ctx context.Context, toEmail, name, itemTitle string) error {
	subject := "Your claim has been approved"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your claim for the item <strong>%s</strong> has been approved by the finder. "+
			"Open the app to see the finder's contact details.</p>",
		name, itemTitle)
	return s.send(ctx, toEmail, subject, body)
}

func (s *emailService) SendClaimRejected(ctx context.Context, toEmail, name, itemTitle, reason string) error {
	subject := "Your claim has been rejected"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your claim for the item <strong>%s</strong> has been rejected by the finder.</p>"+
			"<p>Reason: %s</p>",
		name, itemTitle, reason)
	return s.send(ctx, toEmail, subject, body)
}

func (s *emailService) send(ctx context.Context, toEmail, subject, body string) error {
	if s.client == nil {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Campus Lost & Found <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    body,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
