package decorations

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

var SortableFields = []string{"created_at", "name", "price"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, decorationID int64) (*Decoration, error) {
	return s.repo.GetByID(ctx, decorationID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Decoration, error) {
	params.Name = sanitize.Text(params.Name)
	params.Description = sanitize.HTML(params.Description)
	params.Theme = sanitize.Text(params.Theme)
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, decorationID int64, params UpdateParams) (*Decoration, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	if params.Theme != nil {
		clean := sanitize.Text(*params.Theme)
		params.Theme = &clean
	}
	return s.repo.Update(ctx, decorationID, params)
}

func (s *Service) Delete(ctx context.Context, decorationID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, decorationID, deletedBy)
}

func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{
		Search: strings.TrimSpace(values.Get("search")),
		Theme:  strings.TrimSpace(values.Get("theme")),
	}

	if raw := strings.TrimSpace(values.Get("vendor_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "vendor_id", Message: "must be a positive number"}
		}
		filters.VendorID = &id
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
