package catering

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("catering package not found")

// Package is a catering offering, optionally tied to a vendor.
type Package struct {
	ID            string  `json:"-"`
	PackageID     int64   `json:"package_id"`
	VendorID      *int64  `json:"vendor_id,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Cuisine       string  `json:"cuisine,omitempty"`
	PricePerPlate float64 `json:"price_per_plate"`
	MinGuests     *int    `json:"min_guests,omitempty"`
	MaxGuests     *int    `json:"max_guests,omitempty"`
	Vegetarian    bool    `json:"vegetarian"`
	entity.Audit
}

type Filters struct {
	Search    string
	VendorID  *int64
	Cuisine   string
	CreatedBy *int64
}

type ListResult struct {
	Items []Package
	Total int
}

type CreateParams struct {
	VendorID      *int64
	Name          string
	Description   string
	Cuisine       string
	PricePerPlate float64
	MinGuests     *int
	MaxGuests     *int
	Vegetarian    bool
	CreatedBy     int64
}

type UpdateParams struct {
	VendorID      *int64
	Name          *string
	Description   *string
	Cuisine       *string
	PricePerPlate *float64
	MinGuests     *int
	MaxGuests     *int
	Vegetarian    *bool
	UpdatedBy     int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, packageID int64) (*Package, error)
	Create(ctx context.Context, params CreateParams) (*Package, error)
	Update(ctx context.Context, packageID int64, params UpdateParams) (*Package, error)
	SoftDelete(ctx context.Context, packageID int64, deletedBy int64) error
}
