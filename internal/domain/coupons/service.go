package coupons

import (
	"context"
	"net/url"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

var SortableFields = []string{"created_at", "name", "code", "price", "valid_from"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, couponCodeID int64) (*Coupon, error) {
	return s.repo.GetByID(ctx, couponCodeID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Coupon, error) {
	params.Code = strings.ToUpper(sanitize.Text(params.Code))
	params.Name = sanitize.Text(params.Name)
	params.Description = sanitize.Text(params.Description)
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, couponCodeID int64, params UpdateParams) (*Coupon, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	if params.Description != nil {
		clean := sanitize.Text(*params.Description)
		params.Description = &clean
	}
	return s.repo.Update(ctx, couponCodeID, params)
}

func (s *Service) Delete(ctx context.Context, couponCodeID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, couponCodeID, deletedBy)
}

func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{
		Search: strings.TrimSpace(values.Get("search")),
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
