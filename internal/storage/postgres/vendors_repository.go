package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/vendors"
)

var _ vendors.Repository = (*VendorRepository)(nil)

type VendorRepository struct {
	pool *pgxpool.Pool
}

const vendorColumns = `id, vendor_id, name, description, category_id, email, phone,
       city, address, rating, status, created_by, updated_by, created_at, updated_at`

var vendorSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"city":       "city",
	"rating":     "rating",
}

func scanVendor(row rowScanner) (vendors.Vendor, error) {
	var (
		v                                        vendors.Vendor
		description, email, phone, city, address *string
	)
	err := row.Scan(&v.ID, &v.VendorID, &v.Name, &description, &v.CategoryID,
		&email, &phone, &city, &address, &v.Rating,
		&v.Status, &v.CreatedBy, &v.UpdatedBy, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return vendors.Vendor{}, err
	}
	v.Description = derefString(description)
	v.Email = derefString(email)
	v.Phone = derefString(phone)
	v.City = derefString(city)
	v.Address = derefString(address)
	return v, nil
}

func (r *VendorRepository) List(ctx context.Context, filters vendors.Filters, params pagination.Params) (vendors.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description", "city")
	if filters.CategoryID != nil {
		where.Eq("category_id", *filters.CategoryID)
	}
	if filters.City != "" {
		where.Eq("city", filters.City)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM vendors" + where.SQL()
	listSQL := "SELECT " + vendorColumns + " FROM vendors" + where.SQL() + orderBy(params, vendorSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (vendors.Vendor, error) {
		return scanVendor(rows)
	})
	if err != nil {
		return vendors.ListResult{}, fmt.Errorf("list vendors: %w", err)
	}
	return vendors.ListResult{Items: items, Total: total}, nil
}

func (r *VendorRepository) GetByID(ctx context.Context, vendorID int64) (*vendors.Vendor, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+vendorColumns+" FROM vendors WHERE vendor_id = $1 AND status = TRUE", vendorID)
	vendor, err := scanVendor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendors.ErrNotFound
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepository) Create(ctx context.Context, params vendors.CreateParams) (*vendors.Vendor, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO vendors (name, description, category_id, email, phone, city, address, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+vendorColumns,
		params.Name,
		nullableString(params.Description),
		params.CategoryID,
		nullableString(params.Email),
		nullableString(params.Phone),
		nullableString(params.City),
		nullableString(params.Address),
		params.CreatedBy,
	)
	vendor, err := scanVendor(row)
	if err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepository) Update(ctx context.Context, vendorID int64, params vendors.UpdateParams) (*vendors.Vendor, error) {
	var set setBuilder
	if params.Name != nil {
		set.Set("name", *params.Name)
	}
	if params.Description != nil {
		set.Set("description", nullableString(*params.Description))
	}
	if params.CategoryID != nil {
		set.Set("category_id", *params.CategoryID)
	}
	if params.Email != nil {
		set.Set("email", nullableString(*params.Email))
	}
	if params.Phone != nil {
		set.Set("phone", nullableString(*params.Phone))
	}
	if params.City != nil {
		set.Set("city", nullableString(*params.City))
	}
	if params.Address != nil {
		set.Set("address", nullableString(*params.Address))
	}
	if params.Rating != nil {
		set.Set("rating", *params.Rating)
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE vendors"+set.SQL()+" WHERE vendor_id = "+set.arg(vendorID)+" AND status = TRUE RETURNING "+vendorColumns,
		set.args...)
	vendor, err := scanVendor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendors.ErrNotFound
		}
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepository) SoftDelete(ctx context.Context, vendorID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE vendors SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE vendor_id = $1 AND status = TRUE`, vendorID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendors.ErrNotFound
	}
	return nil
}

const vendorCategoryColumns = `id, category_id, name, description, status, created_by, updated_by, created_at, updated_at`

var vendorCategorySortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func scanVendorCategory(row rowScanner) (vendors.VendorCategory, error) {
	var (
		c           vendors.VendorCategory
		description *string
	)
	err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &description,
		&c.Status, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return vendors.VendorCategory{}, err
	}
	c.Description = derefString(description)
	return c, nil
}

func (r *VendorRepository) ListCategories(ctx context.Context, search string, params pagination.Params) ([]vendors.VendorCategory, int, error) {
	var where whereBuilder
	where.Search(search, "name", "description")
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM vendor_categories" + where.SQL()
	listSQL := "SELECT " + vendorCategoryColumns + " FROM vendor_categories" + where.SQL() + orderBy(params, vendorCategorySortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (vendors.VendorCategory, error) {
		return scanVendorCategory(rows)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list vendor categories: %w", err)
	}
	return items, total, nil
}

func (r *VendorRepository) GetCategoryByID(ctx context.Context, categoryID int64) (*vendors.VendorCategory, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+vendorCategoryColumns+" FROM vendor_categories WHERE category_id = $1 AND status = TRUE", categoryID)
	category, err := scanVendorCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get vendor category: %w", err)
	}
	return &category, nil
}

func (r *VendorRepository) CreateCategory(ctx context.Context, name, description string, createdBy int64) (*vendors.VendorCategory, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO vendor_categories (name, description, created_by)
VALUES ($1, $2, $3)
RETURNING `+vendorCategoryColumns,
		name, nullableString(description), createdBy)
	category, err := scanVendorCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create vendor category: %w", err)
	}
	return &category, nil
}

func (r *VendorRepository) UpdateCategory(ctx context.Context, categoryID int64, name, description *string, updatedBy int64) (*vendors.VendorCategory, error) {
	var set setBuilder
	if name != nil {
		set.Set("name", *name)
	}
	if description != nil {
		set.Set("description", nullableString(*description))
	}
	set.Set("updated_by", updatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE vendor_categories"+set.SQL()+" WHERE category_id = "+set.arg(categoryID)+" AND status = TRUE RETURNING "+vendorCategoryColumns,
		set.args...)
	category, err := scanVendorCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update vendor category: %w", err)
	}
	return &category, nil
}

func (r *VendorRepository) SoftDeleteCategory(ctx context.Context, categoryID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE vendor_categories SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE category_id = $1 AND status = TRUE`, categoryID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete vendor category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendors.ErrCategoryNotFound
	}
	return nil
}

const vendorContactColumns = `id, contact_id, vendor_id, name, email, phone, message,
       status, created_by, updated_by, created_at, updated_at`

var vendorContactSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func scanVendorContact(row rowScanner) (vendors.VendorContact, error) {
	var (
		c                     vendors.VendorContact
		email, phone, message *string
	)
	err := row.Scan(&c.ID, &c.ContactID, &c.VendorID, &c.Name, &email, &phone, &message,
		&c.Status, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return vendors.VendorContact{}, err
	}
	c.Email = derefString(email)
	c.Phone = derefString(phone)
	c.Message = derefString(message)
	return c, nil
}

func (r *VendorRepository) ListContacts(ctx context.Context, filters vendors.ContactFilters, params pagination.Params) ([]vendors.VendorContact, int, error) {
	var where whereBuilder
	if filters.VendorID != nil {
		where.Eq("vendor_id", *filters.VendorID)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM vendor_contacts" + where.SQL()
	listSQL := "SELECT " + vendorContactColumns + " FROM vendor_contacts" + where.SQL() + orderBy(params, vendorContactSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (vendors.VendorContact, error) {
		return scanVendorContact(rows)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list vendor contacts: %w", err)
	}
	return items, total, nil
}

func (r *VendorRepository) GetContactByID(ctx context.Context, contactID int64) (*vendors.VendorContact, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+vendorContactColumns+" FROM vendor_contacts WHERE contact_id = $1", contactID)
	contact, err := scanVendorContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendors.ErrContactNotFound
		}
		return nil, fmt.Errorf("get vendor contact: %w", err)
	}
	return &contact, nil
}

func (r *VendorRepository) CreateContact(ctx context.Context, params vendors.ContactCreateParams) (*vendors.VendorContact, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO vendor_contacts (vendor_id, name, email, phone, message, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+vendorContactColumns,
		params.VendorID,
		params.Name,
		nullableString(params.Email),
		nullableString(params.Phone),
		nullableString(params.Message),
		params.CreatedBy,
	)
	contact, err := scanVendorContact(row)
	if err != nil {
		return nil, fmt.Errorf("create vendor contact: %w", err)
	}
	return &contact, nil
}

func (r *VendorRepository) HardDeleteContact(ctx context.Context, contactID int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM vendor_contacts WHERE contact_id = $1", contactID)
	if err != nil {
		return fmt.Errorf("delete vendor contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vendors.ErrContactNotFound
	}
	return nil
}
