package messages

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

var SortableFields = []string{"created_at"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, messageID int64) (*Message, error) {
	return s.repo.GetByID(ctx, messageID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Message, error) {
	params.Body = sanitize.HTML(params.Body)
	return s.repo.Create(ctx, params)
}

// Delete removes the row; discussion messages are hard-deleted.
func (s *Service) Delete(ctx context.Context, messageID int64) error {
	return s.repo.HardDelete(ctx, messageID)
}

func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{}

	if raw := strings.TrimSpace(values.Get("event_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "event_id", Message: "must be a positive number"}
		}
		filters.EventID = &id
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
