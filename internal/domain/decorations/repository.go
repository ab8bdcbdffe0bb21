package decorations

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("decoration not found")

type Decoration struct {
	ID           string  `json:"-"`
	DecorationID int64   `json:"decoration_id"`
	VendorID     *int64  `json:"vendor_id,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Theme        string  `json:"theme,omitempty"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url,omitempty"`
	entity.Audit
}

type Filters struct {
	Search    string
	VendorID  *int64
	Theme     string
	CreatedBy *int64
}

type ListResult struct {
	Items []Decoration
	Total int
}

type CreateParams struct {
	VendorID    *int64
	Name        string
	Description string
	Theme       string
	Price       float64
	ImageURL    string
	CreatedBy   int64
}

type UpdateParams struct {
	VendorID    *int64
	Name        *string
	Description *string
	Theme       *string
	Price       *float64
	ImageURL    *string
	UpdatedBy   int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, decorationID int64) (*Decoration, error)
	Create(ctx context.Context, params CreateParams) (*Decoration, error)
	Update(ctx context.Context, decorationID int64, params UpdateParams) (*Decoration, error)
	SoftDelete(ctx context.Context, decorationID int64, deletedBy int64) error
}
