package notifications

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

// SortableFields lists the columns notification listings may sort by.
var SortableFields = []string{"created_at", "updated_at", "title"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, notificationID int64) (*Notification, error) {
	return s.repo.GetByID(ctx, notificationID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Notification, error) {
	params.Title = sanitize.Text(params.Title)
	params.Body = sanitize.HTML(params.Body)
	return s.repo.Create(ctx, params)
}

func (s *Service) MarkRead(ctx context.Context, notificationID int64, updatedBy int64) (*Notification, error) {
	return s.repo.MarkRead(ctx, notificationID, updatedBy)
}

func (s *Service) SoftDelete(ctx context.Context, notificationID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, notificationID, deletedBy)
}

// Notify records a notification as a side effect of another operation.
// Failures are logged and swallowed so the primary operation still succeeds.
func (s *Service) Notify(ctx context.Context, userID int64, title, body string) {
	_, err := s.Create(ctx, CreateParams{
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedBy: userID,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Int64("user_id", userID).
			Str("title", title).
			Msg("notification create failed")
	}
}

// ParseFilters extracts notification filters from query parameters.
func ParseFilters(values url.Values, userID int64) (Filters, pagination.Params, error) {
	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}

	filters := Filters{UserID: &userID}
	switch values.Get("read") {
	case "":
	case "true":
		read := true
		filters.Read = &read
	case "false":
		read := false
		filters.Read = &read
	default:
		return Filters{}, pagination.Params{}, pagination.ParamError{Field: "read", Message: "must be true or false"}
	}
	return filters, params, nil
}
