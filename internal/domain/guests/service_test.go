package guests

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository
	created CreateParams
	deleted int64
}

func (s *stubRepo) Create(_ context.Context, params CreateParams) (*Guest, error) {
	s.created = params
	return &Guest{GuestID: 9, Name: params.Name, Email: params.Email, EventID: params.EventID}, nil
}

func (s *stubRepo) HardDelete(_ context.Context, guestID int64) error {
	s.deleted = guestID
	return nil
}

type stubInviter struct {
	sentTo string
	err    error
}

func (s *stubInviter) SendGuestInvitation(_ context.Context, email, _ string, _ *int64) error {
	s.sentTo = email
	return s.err
}

func TestCreateDefaultsAndInvites(t *testing.T) {
	repo := &stubRepo{}
	inviter := &stubInviter{}
	svc := NewService(repo, inviter)

	guest, err := svc.Create(context.Background(), CreateParams{Name: "Ana", Email: "ana@example.com", CreatedBy: 1})
	require.NoError(t, err)
	require.Equal(t, RSVPPending, repo.created.RSVPStatus)
	require.Equal(t, 1, repo.created.Seats)
	require.Equal(t, "ana@example.com", inviter.sentTo)
	require.Equal(t, int64(9), guest.GuestID)
}

func TestCreateSwallowsInvitationFailure(t *testing.T) {
	repo := &stubRepo{}
	inviter := &stubInviter{err: errors.New("smtp down")}
	svc := NewService(repo, inviter)

	_, err := svc.Create(context.Background(), CreateParams{Name: "Ana", Email: "ana@example.com", CreatedBy: 1})
	require.NoError(t, err)
}

func TestCreateSkipsInvitationWithoutEmail(t *testing.T) {
	repo := &stubRepo{}
	inviter := &stubInviter{}
	svc := NewService(repo, inviter)

	_, err := svc.Create(context.Background(), CreateParams{Name: "Ana", CreatedBy: 1})
	require.NoError(t, err)
	require.Empty(t, inviter.sentTo)
}

func TestDeleteIsHard(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 5, 1))
	require.Equal(t, int64(5), repo.deleted)
}

func TestParseFiltersRSVP(t *testing.T) {
	filters, _, err := ParseFilters(url.Values{"rsvp_status": {"accepted"}, "event_id": {"3"}})
	require.NoError(t, err)
	require.Equal(t, "accepted", filters.RSVPStatus)
	require.Equal(t, int64(3), *filters.EventID)

	_, _, err = ParseFilters(url.Values{"rsvp_status": {"maybe"}})
	require.Error(t, err)
}
