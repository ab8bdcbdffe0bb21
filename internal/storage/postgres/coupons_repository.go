package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/coupons"
)

var _ coupons.Repository = (*CouponRepository)(nil)

type CouponRepository struct {
	pool *pgxpool.Pool
}

const couponColumns = `id, coupon_code_id, code, name, description, price,
       min_order_amount, max_discount_amount, usage_limit, valid_from, valid_until,
       status, created_by, updated_by, created_at, updated_at`

var couponSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"code":       "code",
	"price":      "price",
	"valid_from": "valid_from",
}

func scanCoupon(row rowScanner) (coupons.Coupon, error) {
	var (
		c           coupons.Coupon
		description *string
	)
	err := row.Scan(&c.ID, &c.CouponCodeID, &c.Code, &c.Name, &description, &c.Price,
		&c.MinOrderAmount, &c.MaxDiscountAmount, &c.UsageLimit, &c.ValidFrom, &c.ValidUntil,
		&c.Status, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return coupons.Coupon{}, err
	}
	c.Description = derefString(description)
	return c, nil
}

func (r *CouponRepository) List(ctx context.Context, filters coupons.Filters, params pagination.Params) (coupons.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description", "code")
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM coupons" + where.SQL()
	listSQL := "SELECT " + couponColumns + " FROM coupons" + where.SQL() + orderBy(params, couponSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (coupons.Coupon, error) {
		return scanCoupon(rows)
	})
	if err != nil {
		return coupons.ListResult{}, fmt.Errorf("list coupons: %w", err)
	}
	return coupons.ListResult{Items: items, Total: total}, nil
}

func (r *CouponRepository) GetByID(ctx context.Context, couponCodeID int64) (*coupons.Coupon, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+couponColumns+" FROM coupons WHERE coupon_code_id = $1 AND status = TRUE", couponCodeID)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, coupons.ErrNotFound
		}
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return &coupon, nil
}

func (r *CouponRepository) Create(ctx context.Context, params coupons.CreateParams) (*coupons.Coupon, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO coupons (code, name, description, price, min_order_amount,
                     max_discount_amount, usage_limit, valid_from, valid_until, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+couponColumns,
		params.Code,
		params.Name,
		nullableString(params.Description),
		params.Price,
		params.MinOrderAmount,
		params.MaxDiscountAmount,
		params.UsageLimit,
		params.ValidFrom,
		params.ValidUntil,
		params.CreatedBy,
	)
	coupon, err := scanCoupon(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, coupons.ErrCodeTaken
		}
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return &coupon, nil
}

func (r *CouponRepository) Update(ctx context.Context, couponCodeID int64, params coupons.UpdateParams) (*coupons.Coupon, error) {
	var set setBuilder
	if params.Name != nil {
		set.Set("name", *params.Name)
	}
	if params.Description != nil {
		set.Set("description", nullableString(*params.Description))
	}
	if params.Price != nil {
		set.Set("price", *params.Price)
	}
	if params.MinOrderAmount != nil {
		set.Set("min_order_amount", *params.MinOrderAmount)
	}
	if params.MaxDiscountAmount != nil {
		set.Set("max_discount_amount", *params.MaxDiscountAmount)
	}
	if params.UsageLimit != nil {
		set.Set("usage_limit", *params.UsageLimit)
	}
	if params.ValidFrom != nil {
		set.Set("valid_from", *params.ValidFrom)
	}
	if params.ValidUntil != nil {
		set.Set("valid_until", *params.ValidUntil)
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE coupons"+set.SQL()+" WHERE coupon_code_id = "+set.arg(couponCodeID)+" AND status = TRUE RETURNING "+couponColumns,
		set.args...)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, coupons.ErrNotFound
		}
		return nil, fmt.Errorf("update coupon: %w", err)
	}
	return &coupon, nil
}

func (r *CouponRepository) SoftDelete(ctx context.Context, couponCodeID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE coupons SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE coupon_code_id = $1 AND status = TRUE`, couponCodeID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return coupons.ErrNotFound
	}
	return nil
}
