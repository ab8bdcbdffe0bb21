package events

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

// SortableFields is the whitelist for the events listing sortBy parameter.
var SortableFields = []string{"created_at", "updated_at", "name", "start_date", "budget"}

// TypeSortableFields is the whitelist for the event-types listing.
var TypeSortableFields = []string{"created_at", "name"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, eventID int64) (*Event, error) {
	return s.repo.GetByID(ctx, eventID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	params.Name = sanitize.Text(params.Name)
	params.Description = sanitize.HTML(params.Description)
	params.Venue = sanitize.Text(params.Venue)
	params.City = sanitize.Text(params.City)
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, eventID int64, params UpdateParams) (*Event, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	if params.Venue != nil {
		clean := sanitize.Text(*params.Venue)
		params.Venue = &clean
	}
	if params.City != nil {
		clean := sanitize.Text(*params.City)
		params.City = &clean
	}
	return s.repo.Update(ctx, eventID, params)
}

func (s *Service) Delete(ctx context.Context, eventID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, eventID, deletedBy)
}

func (s *Service) ListTypes(ctx context.Context, search string, params pagination.Params) ([]EventType, int, error) {
	return s.repo.ListTypes(ctx, search, params)
}

func (s *Service) GetTypeByID(ctx context.Context, eventTypeID int64) (*EventType, error) {
	return s.repo.GetTypeByID(ctx, eventTypeID)
}

func (s *Service) CreateType(ctx context.Context, name, description string, createdBy int64) (*EventType, error) {
	return s.repo.CreateType(ctx, sanitize.Text(name), sanitize.Text(description), createdBy)
}

func (s *Service) UpdateType(ctx context.Context, eventTypeID int64, name, description *string, updatedBy int64) (*EventType, error) {
	if name != nil {
		clean := sanitize.Text(*name)
		name = &clean
	}
	if description != nil {
		clean := sanitize.Text(*description)
		description = &clean
	}
	return s.repo.UpdateType(ctx, eventTypeID, name, description, updatedBy)
}

func (s *Service) DeleteType(ctx context.Context, eventTypeID int64, deletedBy int64) error {
	return s.repo.SoftDeleteType(ctx, eventTypeID, deletedBy)
}

// ParseFilters validates the entity-specific query parameters for the events
// listing: free-text search, exact-match event_type_id and city, plus the
// shared pagination/sort/status block.
func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{
		Search: strings.TrimSpace(values.Get("search")),
		City:   strings.TrimSpace(values.Get("city")),
	}

	if raw := strings.TrimSpace(values.Get("event_type_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "event_type_id", Message: "must be a positive number"}
		}
		filters.EventTypeID = &id
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
