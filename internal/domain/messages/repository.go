package messages

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("message not found")

// Message is one entry in an event's discussion thread. SenderID mirrors
// created_by; messages are hard-deleted.
type Message struct {
	ID        string `json:"-"`
	MessageID int64  `json:"message_id"`
	EventID   int64  `json:"event_id"`
	SenderID  int64  `json:"sender_id"`
	Body      string `json:"body"`
	entity.Audit
}

type Filters struct {
	EventID   *int64
	CreatedBy *int64
}

type ListResult struct {
	Items []Message
	Total int
}

type CreateParams struct {
	EventID   int64
	Body      string
	CreatedBy int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, messageID int64) (*Message, error)
	Create(ctx context.Context, params CreateParams) (*Message, error)
	HardDelete(ctx context.Context, messageID int64) error
}
