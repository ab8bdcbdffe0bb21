package tickets

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

var SortableFields = []string{"created_at", "name", "price", "sale_start_at"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, ticketID int64) (*Ticket, error) {
	return s.repo.GetByID(ctx, ticketID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Ticket, error) {
	params.Name = sanitize.Text(params.Name)
	params.Description = sanitize.HTML(params.Description)
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, ticketID int64, params UpdateParams) (*Ticket, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	return s.repo.Update(ctx, ticketID, params)
}

func (s *Service) Delete(ctx context.Context, ticketID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, ticketID, deletedBy)
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

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
