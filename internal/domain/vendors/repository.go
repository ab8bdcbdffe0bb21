package vendors

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var (
	ErrNotFound         = errors.New("vendor not found")
	ErrCategoryNotFound = errors.New("vendor category not found")
	ErrContactNotFound  = errors.New("vendor contact not found")
)

// Vendor is a service provider listed on the marketplace.
type Vendor struct {
	ID          string   `json:"-"`
	VendorID    int64    `json:"vendor_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	entity.Audit
}

type VendorCategory struct {
	ID          string `json:"-"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	entity.Audit
}

// VendorContact is an inquiry sent to a vendor through the marketplace.
// Contacts are hard-deleted.
type VendorContact struct {
	ID        string `json:"-"`
	ContactID int64  `json:"contact_id"`
	VendorID  int64  `json:"vendor_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
	entity.Audit
}

type Filters struct {
	Search     string
	CategoryID *int64
	City       string
	CreatedBy  *int64
}

type ListResult struct {
	Items []Vendor
	Total int
}

type ContactFilters struct {
	VendorID  *int64
	CreatedBy *int64
}

type CreateParams struct {
	Name        string
	Description string
	CategoryID  *int64
	Email       string
	Phone       string
	City        string
	Address     string
	CreatedBy   int64
}

type UpdateParams struct {
	Name        *string
	Description *string
	CategoryID  *int64
	Email       *string
	Phone       *string
	City        *string
	Address     *string
	Rating      *float64
	UpdatedBy   int64
}

type ContactCreateParams struct {
	VendorID  int64
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedBy int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, vendorID int64) (*Vendor, error)
	Create(ctx context.Context, params CreateParams) (*Vendor, error)
	Update(ctx context.Context, vendorID int64, params UpdateParams) (*Vendor, error)
	SoftDelete(ctx context.Context, vendorID int64, deletedBy int64) error

	ListCategories(ctx context.Context, search string, params pagination.Params) ([]VendorCategory, int, error)
	GetCategoryByID(ctx context.Context, categoryID int64) (*VendorCategory, error)
	CreateCategory(ctx context.Context, name, description string, createdBy int64) (*VendorCategory, error)
	UpdateCategory(ctx context.Context, categoryID int64, name, description *string, updatedBy int64) (*VendorCategory, error)
	SoftDeleteCategory(ctx context.Context, categoryID int64, deletedBy int64) error

	ListContacts(ctx context.Context, filters ContactFilters, params pagination.Params) ([]VendorContact, int, error)
	GetContactByID(ctx context.Context, contactID int64) (*VendorContact, error)
	CreateContact(ctx context.Context, params ContactCreateParams) (*VendorContact, error)
	HardDeleteContact(ctx context.Context, contactID int64) error
}
