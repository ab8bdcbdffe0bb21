package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("ticket not found")

// Ticket is a priced admission tier for an event.
type Ticket struct {
	ID          string     `json:"-"`
	TicketID    int64      `json:"ticket_id"`
	EventID     int64      `json:"event_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	MaxPerOrder *int       `json:"max_per_order,omitempty"`
	SaleStartAt *time.Time `json:"sale_start_at,omitempty"`
	SaleEndAt   *time.Time `json:"sale_end_at,omitempty"`
	entity.Audit
}

type Filters struct {
	Search    string
	EventID   *int64
	CreatedBy *int64
}

type ListResult struct {
	Items []Ticket
	Total int
}

type CreateParams struct {
	EventID     int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	MaxPerOrder *int
	SaleStartAt *time.Time
	SaleEndAt   *time.Time
	CreatedBy   int64
}

type UpdateParams struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	MaxPerOrder *int
	SaleStartAt *time.Time
	SaleEndAt   *time.Time
	UpdatedBy   int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, ticketID int64) (*Ticket, error)
	Create(ctx context.Context, params CreateParams) (*Ticket, error)
	Update(ctx context.Context, ticketID int64, params UpdateParams) (*Ticket, error)
	SoftDelete(ctx context.Context, ticketID int64, deletedBy int64) error
}
