package guests

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
	"github.com/rs/zerolog"
)

var SortableFields = []string{"created_at", "name", "rsvp_status"}

// Inviter sends an invitation to a newly added guest. Implemented by the
// email service; failures never fail guest creation.
type Inviter interface {
	SendGuestInvitation(ctx context.Context, email, name string, eventID *int64) error
}

type Service struct {
	repo    Repository
	inviter Inviter
}

func NewService(repo Repository, inviter Inviter) *Service {
	return &Service{repo: repo, inviter: inviter}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, guestID int64) (*Guest, error) {
	return s.repo.GetByID(ctx, guestID)
}

// Create inserts the guest and then sends the invitation email best-effort:
// a mail failure is logged and swallowed, never surfaced to the caller.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Guest, error) {
	params.Name = sanitize.Text(params.Name)
	if params.RSVPStatus == "" {
		params.RSVPStatus = RSVPPending
	}
	if params.Seats < 1 {
		params.Seats = 1
	}

	guest, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.inviter != nil && guest.Email != "" {
		if err := s.inviter.SendGuestInvitation(ctx, guest.Email, guest.Name, guest.EventID); err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Int64("guest_id", guest.GuestID).
				Msg("guest invitation email failed")
		}
	}
	return guest, nil
}

func (s *Service) Update(ctx context.Context, guestID int64, params UpdateParams) (*Guest, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	return s.repo.Update(ctx, guestID, params)
}

// Delete removes the guest row. Guests use hard delete.
func (s *Service) Delete(ctx context.Context, guestID int64, _ int64) error {
	return s.repo.HardDelete(ctx, guestID)
}

func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{
		Search: strings.TrimSpace(values.Get("search")),
	}

	if raw := strings.TrimSpace(values.Get("event_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "event_id", Message: "must be a positive number"}
		}
		filters.EventID = &id
	}

	if raw := strings.TrimSpace(values.Get("rsvp_status")); raw != "" {
		switch raw {
		case RSVPPending, RSVPAccepted, RSVPDeclined:
			filters.RSVPStatus = raw
		default:
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "rsvp_status", Message: "must be pending, accepted or declined"}
		}
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
