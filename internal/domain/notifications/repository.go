package notifications

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID             string `json:"-"`
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Title          string `json:"title"`
	Body           string `json:"body,omitempty"`
	Read           bool   `json:"read"`
	entity.Audit
}

type Filters struct {
	UserID *int64
	Read   *bool
}

type ListResult struct {
	Items []Notification
	Total int
}

type CreateParams struct {
	UserID    int64
	Title     string
	Body      string
	CreatedBy int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, notificationID int64) (*Notification, error)
	Create(ctx context.Context, params CreateParams) (*Notification, error)
	MarkRead(ctx context.Context, notificationID int64, updatedBy int64) (*Notification, error)
	SoftDelete(ctx context.Context, notificationID int64, deletedBy int64) error
}
