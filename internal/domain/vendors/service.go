package vendors

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/sanitize"
)

var (
	SortableFields         = []string{"created_at", "name", "city", "rating"}
	CategorySortableFields = []string{"created_at", "name"}
	ContactSortableFields  = []string{"created_at", "name"}
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetByID(ctx context.Context, vendorID int64) (*Vendor, error) {
	return s.repo.GetByID(ctx, vendorID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Vendor, error) {
	params.Name = sanitize.Text(params.Name)
	params.Description = sanitize.HTML(params.Description)
	params.City = sanitize.Text(params.City)
	params.Address = sanitize.Text(params.Address)
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, vendorID int64, params UpdateParams) (*Vendor, error) {
	if params.Name != nil {
		clean := sanitize.Text(*params.Name)
		params.Name = &clean
	}
	if params.Description != nil {
		clean := sanitize.HTML(*params.Description)
		params.Description = &clean
	}
	return s.repo.Update(ctx, vendorID, params)
}

func (s *Service) Delete(ctx context.Context, vendorID int64, deletedBy int64) error {
	return s.repo.SoftDelete(ctx, vendorID, deletedBy)
}

func (s *Service) ListCategories(ctx context.Context, search string, params pagination.Params) ([]VendorCategory, int, error) {
	return s.repo.ListCategories(ctx, search, params)
}

func (s *Service) GetCategoryByID(ctx context.Context, categoryID int64) (*VendorCategory, error) {
	return s.repo.GetCategoryByID(ctx, categoryID)
}

func (s *Service) CreateCategory(ctx context.Context, name, description string, createdBy int64) (*VendorCategory, error) {
	return s.repo.CreateCategory(ctx, sanitize.Text(name), sanitize.Text(description), createdBy)
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID int64, name, description *string, updatedBy int64) (*VendorCategory, error) {
	if name != nil {
		clean := sanitize.Text(*name)
		name = &clean
	}
	if description != nil {
		clean := sanitize.Text(*description)
		description = &clean
	}
	return s.repo.UpdateCategory(ctx, categoryID, name, description, updatedBy)
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID int64, deletedBy int64) error {
	return s.repo.SoftDeleteCategory(ctx, categoryID, deletedBy)
}

func (s *Service) ListContacts(ctx context.Context, filters ContactFilters, params pagination.Params) ([]VendorContact, int, error) {
	return s.repo.ListContacts(ctx, filters, params)
}

func (s *Service) GetContactByID(ctx context.Context, contactID int64) (*VendorContact, error) {
	return s.repo.GetContactByID(ctx, contactID)
}

func (s *Service) CreateContact(ctx context.Context, params ContactCreateParams) (*VendorContact, error) {
	params.Name = sanitize.Text(params.Name)
	params.Message = sanitize.Text(params.Message)
	return s.repo.CreateContact(ctx, params)
}

// DeleteContact removes the row; vendor contacts are hard-deleted.
func (s *Service) DeleteContact(ctx context.Context, contactID int64) error {
	return s.repo.HardDeleteContact(ctx, contactID)
}

func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	filters := Filters{
		Search: strings.TrimSpace(values.Get("search")),
		City:   strings.TrimSpace(values.Get("city")),
	}

	if raw := strings.TrimSpace(values.Get("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "category_id", Message: "must be a positive number"}
		}
		filters.CategoryID = &id
	}

	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}
	return filters, params, nil
}

func ParseContactFilters(values url.Values) (ContactFilters, pagination.Params, error) {
	filters := ContactFilters{}

	if raw := strings.TrimSpace(values.Get("vendor_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return ContactFilters{}, pagination.Params{}, pagination.ParamError{Field: "vendor_id", Message: "must be a positive number"}
		}
		filters.VendorID = &id
	}

	params, err := pagination.Parse(values, ContactSortableFields)
	if err != nil {
		return ContactFilters{}, pagination.Params{}, err
	}
	return filters, params, nil
}
