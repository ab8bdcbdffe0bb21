package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/planora/server/internal/config"
)

// Sender is the slice of the Resend client the service uses. It exists so
// tests can stub delivery without network access.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Service sends transactional email through the Resend API. When email is
// disabled in config, sends are logged and dropped so the rest of the
// application behaves the same in development.
type Service struct {
	config config.EmailConfig
	sender Sender
	logger zerolog.Logger
}

func NewService(cfg config.EmailConfig, logger zerolog.Logger) (*Service, error) {
	if cfg.Enabled {
		if err := validateAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
	}

	var sender Sender
	if cfg.Enabled {
		sender = resend.NewClient(cfg.APIKey).Emails
	}

	return &Service{
		config: cfg,
		sender: sender,
		logger: logger.With().Str("component", "email").Logger(),
	}, nil
}

// NewServiceWithSender wires an explicit sender, used in tests.
func NewServiceWithSender(cfg config.EmailConfig, sender Sender, logger zerolog.Logger) *Service {
	return &Service{
		config: cfg,
		sender: sender,
		logger: logger.With().Str("component", "email").Logger(),
	}
}

// SendGuestInvitation emails an event invitation to a guest.
func (s *Service) SendGuestInvitation(ctx context.Context, to, guestName string, eventID *int64) error {
	if err := validateAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	if !s.config.Enabled {
		s.logger.Info().
			Str("to", to).
			Str("guest", guestName).
			Msg("email disabled, skipping guest invitation")
		return nil
	}

	subject := "You're invited"
	body := fmt.Sprintf("<p>Hi %s,</p><p>You have been invited to an event on Planora. "+
		"Sign in to view the details and RSVP.</p>", guestName)

	return s.send(ctx, to, subject, body)
}

func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.sender.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("email rate limit exceeded: %w", err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().
		Str("email_id", sent.Id).
		Str("to", to).
		Msg("email sent via Resend")
	return nil
}

// validateAddress checks format and rejects header injection attempts.
func validateAddress(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	if strings.ContainsAny(addr.Address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	return nil
}
