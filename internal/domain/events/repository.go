package events

import (
	"context"
	"errors"
	"time"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var (
	ErrNotFound     = errors.New("event not found")
	ErrTypeNotFound = errors.New("event type not found")
)

// Event is a planned occasion listed on the marketplace. EventTypeID is a
// loose reference to an EventType public id; it is not enforced by the store.
type Event struct {
	ID            string     `json:"-"`
	EventID       int64      `json:"event_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Venue         string     `json:"venue,omitempty"`
	City          string     `json:"city,omitempty"`
	EventTypeID   *int64     `json:"event_type_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	GuestCapacity *int       `json:"guest_capacity,omitempty"`
	Budget        *float64   `json:"budget,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	entity.Audit
}

// EventType is the lookup entity categorizing events (wedding, conference...).
type EventType struct {
	ID          string `json:"-"`
	EventTypeID int64  `json:"event_type_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	entity.Audit
}

type Filters struct {
	Search      string
	EventTypeID *int64
	City        string
	CreatedBy   *int64
}

type ListResult struct {
	Items []Event
	Total int
}

type CreateParams struct {
	Name          string
	Description   string
	Venue         string
	City          string
	EventTypeID   *int64
	StartDate     *time.Time
	EndDate       *time.Time
	GuestCapacity *int
	Budget        *float64
	CoverImageURL string
	CreatedBy     int64
}

// UpdateParams carries a partial update; nil fields are left unchanged.
// UpdatedBy is always stamped.
type UpdateParams struct {
	Name          *string
	Description   *string
	Venue         *string
	City          *string
	EventTypeID   *int64
	StartDate     *time.Time
	EndDate       *time.Time
	GuestCapacity *int
	Budget        *float64
	CoverImageURL *string
	UpdatedBy     int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, eventID int64) (*Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Update(ctx context.Context, eventID int64, params UpdateParams) (*Event, error)
	SoftDelete(ctx context.Context, eventID int64, deletedBy int64) error

	ListTypes(ctx context.Context, search string, params pagination.Params) ([]EventType, int, error)
	GetTypeByID(ctx context.Context, eventTypeID int64) (*EventType, error)
	CreateType(ctx context.Context, name, description string, createdBy int64) (*EventType, error)
	UpdateType(ctx context.Context, eventTypeID int64, name, description *string, updatedBy int64) (*EventType, error)
	SoftDeleteType(ctx context.Context, eventTypeID int64, deletedBy int64) error
}
