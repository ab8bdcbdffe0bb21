package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/guests"
)

var _ guests.Repository = (*GuestRepository)(nil)

type GuestRepository struct {
	pool *pgxpool.Pool
}

const guestColumns = `id, guest_id, event_id, name, email, phone, rsvp_status, seats,
       status, created_by, updated_by, created_at, updated_at`

var guestSortColumns = map[string]string{
	"created_at":  "created_at",
	"name":        "name",
	"rsvp_status": "rsvp_status",
}

func scanGuest(row rowScanner) (guests.Guest, error) {
	var (
		g            guests.Guest
		email, phone *string
	)
	err := row.Scan(&g.ID, &g.GuestID, &g.EventID, &g.Name, &email, &phone,
		&g.RSVPStatus, &g.Seats, &g.Status, &g.CreatedBy, &g.UpdatedBy,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return guests.Guest{}, err
	}
	g.Email = derefString(email)
	g.Phone = derefString(phone)
	return g, nil
}

func (r *GuestRepository) List(ctx context.Context, filters guests.Filters, params pagination.Params) (guests.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "email")
	if filters.EventID != nil {
		where.Eq("event_id", *filters.EventID)
	}
	if filters.RSVPStatus != "" {
		where.Eq("rsvp_status", filters.RSVPStatus)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM guests" + where.SQL()
	listSQL := "SELECT " + guestColumns + " FROM guests" + where.SQL() + orderBy(params, guestSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (guests.Guest, error) {
		return scanGuest(rows)
	})
	if err != nil {
		return guests.ListResult{}, fmt.Errorf("list guests: %w", err)
	}
	return guests.ListResult{Items: items, Total: total}, nil
}

func (r *GuestRepository) GetByID(ctx context.Context, guestID int64) (*guests.Guest, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+guestColumns+" FROM guests WHERE guest_id = $1", guestID)
	guest, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guests.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return &guest, nil
}

func (r *GuestRepository) Create(ctx context.Context, params guests.CreateParams) (*guests.Guest, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO guests (event_id, name, email, phone, rsvp_status, seats, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+guestColumns,
		params.EventID,
		params.Name,
		nullableString(params.Email),
		nullableString(params.Phone),
		params.RSVPStatus,
		params.Seats,
		params.CreatedBy,
	)
	guest, err := scanGuest(row)
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return &guest, nil
}

func (r *GuestRepository) Update(ctx context.Context, guestID int64, params guests.UpdateParams) (*guests.Guest, error) {
	var set setBuilder
	if params.EventID != nil {
		set.Set("event_id", *params.EventID)
	}
	if params.Name != nil {
		set.Set("name", *params.Name)
	}
	if params.Email != nil {
		set.Set("email", nullableString(*params.Email))
	}
	if params.Phone != nil {
		set.Set("phone", nullableString(*params.Phone))
	}
	if params.RSVPStatus != nil {
		set.Set("rsvp_status", *params.RSVPStatus)
	}
	if params.Seats != nil {
		set.Set("seats", *params.Seats)
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE guests"+set.SQL()+" WHERE guest_id = "+set.arg(guestID)+" RETURNING "+guestColumns,
		set.args...)
	guest, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guests.ErrNotFound
		}
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return &guest, nil
}

func (r *GuestRepository) HardDelete(ctx context.Context, guestID int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM guests WHERE guest_id = $1", guestID)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return guests.ErrNotFound
	}
	return nil
}
