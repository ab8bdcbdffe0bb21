package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/decorations"
)

var _ decorations.Repository = (*DecorationRepository)(nil)

type DecorationRepository struct {
	pool *pgxpool.Pool
}

const decorationColumns = `id, decoration_id, vendor_id, name, description, theme,
       price, image_url, status, created_by, updated_by, created_at, updated_at`

var decorationSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"price":      "price",
}

func scanDecoration(row rowScanner) (decorations.Decoration, error) {
	var (
		d                            decorations.Decoration
		description, theme, imageURL *string
	)
	err := row.Scan(&d.ID, &d.DecorationID, &d.VendorID, &d.Name, &description, &theme,
		&d.Price, &imageURL, &d.Status, &d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return decorations.Decoration{}, err
	}
	d.Description = derefString(description)
	d.Theme = derefString(theme)
	d.ImageURL = derefString(imageURL)
	return d, nil
}

func (r *DecorationRepository) List(ctx context.Context, filters decorations.Filters, params pagination.Params) (decorations.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description", "theme")
	if filters.VendorID != nil {
		where.Eq("vendor_id", *filters.VendorID)
	}
	if filters.Theme != "" {
		where.Eq("theme", filters.Theme)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM decorations" + where.SQL()
	listSQL := "SELECT " + decorationColumns + " FROM decorations" + where.SQL() + orderBy(params, decorationSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (decorations.Decoration, error) {
		return scanDecoration(rows)
	})
	if err != nil {
		return decorations.ListResult{}, fmt.Errorf("list decorations: %w", err)
	}
	return decorations.ListResult{Items: items, Total: total}, nil
}

func (r *DecorationRepository) GetByID(ctx context.Context, decorationID int64) (*decorations.Decoration, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+decorationColumns+" FROM decorations WHERE decoration_id = $1 AND status = TRUE", decorationID)
	decoration, err := scanDecoration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decorations.ErrNotFound
		}
		return nil, fmt.Errorf("get decoration: %w", err)
	}
	return &decoration, nil
}

func (r *DecorationRepository) Create(ctx context.Context, params decorations.CreateParams) (*decorations.Decoration, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO decorations (vendor_id, name, description, theme, price, image_url, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+decorationColumns,
		params.VendorID,
		params.Name,
		nullableString(params.Description),
		nullableString(params.Theme),
		params.Price,
		nullableString(params.ImageURL),
		params.CreatedBy,
	)
	decoration, err := scanDecoration(row)
	if err != nil {
		return nil, fmt.Errorf("create decoration: %w", err)
	}
	return &decoration, nil
}

func (r *DecorationRepository) Update(ctx context.Context, decorationID int64, params decorations.UpdateParams) (*decorations.Decoration, error) {
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
	if params.Theme != nil {
		set.Set("theme", nullableString(*params.Theme))
	}
	if params.Price != nil {
		set.Set("price", *params.Price)
	}
	if params.ImageURL != nil {
		set.Set("image_url", nullableString(*params.ImageURL))
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE decorations"+set.SQL()+" WHERE decoration_id = "+set.arg(decorationID)+" AND status = TRUE RETURNING "+decorationColumns,
		set.args...)
	decoration, err := scanDecoration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, decorations.ErrNotFound
		}
		return nil, fmt.Errorf("update decoration: %w", err)
	}
	return &decoration, nil
}

func (r *DecorationRepository) SoftDelete(ctx context.Context, decorationID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE decorations SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE decoration_id = $1 AND status = TRUE`, decorationID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete decoration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return decorations.ErrNotFound
	}
	return nil
}
