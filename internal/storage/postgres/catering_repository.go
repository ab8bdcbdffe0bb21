package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/catering"
)

var _ catering.Repository = (*CateringRepository)(nil)

type CateringRepository struct {
	pool *pgxpool.Pool
}

const cateringColumns = `id, package_id, vendor_id, name, description, cuisine,
       price_per_plate, min_guests, max_guests, vegetarian,
       status, created_by, updated_by, created_at, updated_at`

var cateringSortColumns = map[string]string{
	"created_at":      "created_at",
	"name":            "name",
	"price_per_plate": "price_per_plate",
}

func scanCateringPackage(row rowScanner) (catering.Package, error) {
	var (
		p                    catering.Package
		description, cuisine *string
	)
	err := row.Scan(&p.ID, &p.PackageID, &p.VendorID, &p.Name, &description, &cuisine,
		&p.PricePerPlate, &p.MinGuests, &p.MaxGuests, &p.Vegetarian,
		&p.Status, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return catering.Package{}, err
	}
	p.Description = derefString(description)
	p.Cuisine = derefString(cuisine)
	return p, nil
}

func (r *CateringRepository) List(ctx context.Context, filters catering.Filters, params pagination.Params) (catering.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description", "cuisine")
	if filters.VendorID != nil {
		where.Eq("vendor_id", *filters.VendorID)
	}
	if filters.Cuisine != "" {
		where.Eq("cuisine", filters.Cuisine)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM catering_packages" + where.SQL()
	listSQL := "SELECT " + cateringColumns + " FROM catering_packages" + where.SQL() + orderBy(params, cateringSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (catering.Package, error) {
		return scanCateringPackage(rows)
	})
	if err != nil {
		return catering.ListResult{}, fmt.Errorf("list catering packages: %w", err)
	}
	return catering.ListResult{Items: items, Total: total}, nil
}

func (r *CateringRepository) GetByID(ctx context.Context, packageID int64) (*catering.Package, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+cateringColumns+" FROM catering_packages WHERE package_id = $1 AND status = TRUE", packageID)
	pkg, err := scanCateringPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catering.ErrNotFound
		}
		return nil, fmt.Errorf("get catering package: %w", err)
	}
	return &pkg, nil
}

func (r *CateringRepository) Create(ctx context.Context, params catering.CreateParams) (*catering.Package, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO catering_packages (vendor_id, name, description, cuisine, price_per_plate,
                               min_guests, max_guests, vegetarian, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+cateringColumns,
		params.VendorID,
		params.Name,
		nullableString(params.Description),
		nullableString(params.Cuisine),
		params.PricePerPlate,
		params.MinGuests,
		params.MaxGuests,
		params.Vegetarian,
		params.CreatedBy,
	)
	pkg, err := scanCateringPackage(row)
	if err != nil {
		return nil, fmt.Errorf("create catering package: %w", err)
	}
	return &pkg, nil
}

func (r *CateringRepository) Update(ctx context.Context, packageID int64, params catering.UpdateParams) (*catering.Package, error) {
	var set setBuilder
	if params.VendorID != nil {
		set.Set("vendor_id", *params.VendorID)
	}
	if params.Name != nil {
		set.Set("name", *params.Name)
	}
	if params.Description != nil {
		set.Set("description", nullableString(*params.Description))
	}
	if params.Cuisine != nil {
		set.Set("cuisine", nullableString(*params.Cuisine))
	}
	if params.PricePerPlate != nil {
		set.Set("price_per_plate", *params.PricePerPlate)
	}
	if params.MinGuests != nil {
		set.Set("min_guests", *params.MinGuests)
	}
	if params.MaxGuests != nil {
		set.Set("max_guests", *params.MaxGuests)
	}
	if params.Vegetarian != nil {
		set.Set("vegetarian", *params.Vegetarian)
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE catering_packages"+set.SQL()+" WHERE package_id = "+set.arg(packageID)+" AND status = TRUE RETURNING "+cateringColumns,
		set.args...)
	pkg, err := scanCateringPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catering.ErrNotFound
		}
		return nil, fmt.Errorf("update catering package: %w", err)
	}
	return &pkg, nil
}

func (r *CateringRepository) SoftDelete(ctx context.Context, packageID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE catering_packages SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE package_id = $1 AND status = TRUE`, packageID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete catering package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catering.ErrNotFound
	}
	return nil
}
