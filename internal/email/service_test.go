package email

import (
	"context"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/planora/server/internal/config"
)

type stubSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (s *stubSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	s.sent = append(s.sent, params)
	if s.err != nil {
		return nil, s.err
	}
	return &resend.SendEmailResponse{Id: "email_1"}, nil
}

func TestSendGuestInvitation(t *testing.T) {
	sender := &stubSender{}
	svc := NewServiceWithSender(config.EmailConfig{
		Enabled: true,
		From:    "events@planora.dev",
	}, sender, zerolog.Nop())

	err := svc.SendGuestInvitation(context.Background(), "guest@example.com", "Ada", nil)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	require.Equal(t, []string{"guest@example.com"}, sender.sent[0].To)
	require.Contains(t, sender.sent[0].Html, "Ada")
}

func TestSendGuestInvitationDisabledSkipsDelivery(t *testing.T) {
	sender := &stubSender{}
	svc := NewServiceWithSender(config.EmailConfig{Enabled: false}, sender, zerolog.Nop())

	err := svc.SendGuestInvitation(context.Background(), "guest@example.com", "Ada", nil)
	require.NoError(t, err)
	require.Empty(t, sender.sent)
}

func TestSendGuestInvitationRejectsBadAddress(t *testing.T) {
	svc := NewServiceWithSender(config.EmailConfig{Enabled: true, From: "events@planora.dev"}, &stubSender{}, zerolog.Nop())

	err := svc.SendGuestInvitation(context.Background(), "not-an-email", "Ada", nil)
	require.Error(t, err)
}

func TestNewServiceValidatesSenderWhenEnabled(t *testing.T) {
	_, err := NewService(config.EmailConfig{Enabled: true, From: "bogus"}, zerolog.Nop())
	require.Error(t, err)

	_, err = NewService(config.EmailConfig{Enabled: false}, zerolog.Nop())
	require.NoError(t, err)
}
