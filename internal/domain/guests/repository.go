package guests

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("guest not found")

// RSVP statuses accepted for a guest.
const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

// Guest is an invitee attached to an event. Guests are hard-deleted: removing
// one deletes the row rather than flipping status.
type Guest struct {
	ID         string `json:"-"`
	GuestID    int64  `json:"guest_id"`
	EventID    *int64 `json:"event_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	RSVPStatus string `json:"rsvp_status"`
	Seats      int    `json:"seats"`
	entity.Audit
}

type Filters struct {
	Search     string
	EventID    *int64
	RSVPStatus string
	CreatedBy  *int64
}

type ListResult struct {
	Items []Guest
	Total int
}

type CreateParams struct {
	EventID    *int64
	Name       string
	Email      string
	Phone      string
	RSVPStatus string
	Seats      int
	CreatedBy  int64
}

type UpdateParams struct {
	EventID    *int64
	Name       *string
	Email      *string
	Phone      *string
	RSVPStatus *string
	Seats      *int
	UpdatedBy  int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, guestID int64) (*Guest, error)
	Create(ctx context.Context, params CreateParams) (*Guest, error)
	Update(ctx context.Context, guestID int64, params UpdateParams) (*Guest, error)
	HardDelete(ctx context.Context, guestID int64) error
}
