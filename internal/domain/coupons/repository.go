package coupons

import (
	"context"
	"errors"
	"time"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("coupon not found")
	ErrCodeTaken = errors.New("coupon code already exists")
)

// Coupon is a discount code. Price is the flat discount amount applied to an
// order; MaxDiscountAmount caps it when the coupon is percentage-based
// upstream.
type Coupon struct {
	ID                string     `json:"-"`
	CouponCodeID      int64      `json:"coupon_code_id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Price             float64    `json:"price"`
	MinOrderAmount    float64    `json:"min_order_amount"`
	MaxDiscountAmount float64    `json:"max_discount_amount"`
	UsageLimit        int        `json:"usage_limit"`
	ValidFrom         *time.Time `json:"valid_from,omitempty"`
	ValidUntil        *time.Time `json:"valid_until,omitempty"`
	entity.Audit
}

type Filters struct {
	Search    string
	CreatedBy *int64
}

type ListResult struct {
	Items []Coupon
	Total int
}

type CreateParams struct {
	Code              string
	Name              string
	Description       string
	Price             float64
	MinOrderAmount    float64
	MaxDiscountAmount float64
	UsageLimit        int
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	CreatedBy         int64
}

type UpdateParams struct {
	Name              *string
	Description       *string
	Price             *float64
	MinOrderAmount    *float64
	MaxDiscountAmount *float64
	UsageLimit        *int
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	UpdatedBy         int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, couponCodeID int64) (*Coupon, error)
	Create(ctx context.Context, params CreateParams) (*Coupon, error)
	Update(ctx context.Context, couponCodeID int64, params UpdateParams) (*Coupon, error)
	SoftDelete(ctx context.Context, couponCodeID int64, deletedBy int64) error
}
