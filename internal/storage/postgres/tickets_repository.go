package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/tickets"
)

var _ tickets.Repository = (*TicketRepository)(nil)

type TicketRepository struct {
	pool *pgxpool.Pool
}

const ticketColumns = `id, ticket_id, event_id, name, description, price, quantity,
       max_per_order, sale_start_at, sale_end_at,
       status, created_by, updated_by, created_at, updated_at`

var ticketSortColumns = map[string]string{
	"created_at":    "created_at",
	"name":          "name",
	"price":         "price",
	"sale_start_at": "sale_start_at",
}

func scanTicket(row rowScanner) (tickets.Ticket, error) {
	var (
		t           tickets.Ticket
		description *string
	)
	err := row.Scan(&t.ID, &t.TicketID, &t.EventID, &t.Name, &description,
		&t.Price, &t.Quantity, &t.MaxPerOrder, &t.SaleStartAt, &t.SaleEndAt,
		&t.Status, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return tickets.Ticket{}, err
	}
	t.Description = derefString(description)
	return t, nil
}

func (r *TicketRepository) List(ctx context.Context, filters tickets.Filters, params pagination.Params) (tickets.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description")
	if filters.EventID != nil {
		where.Eq("event_id", *filters.EventID)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM tickets" + where.SQL()
	listSQL := "SELECT " + ticketColumns + " FROM tickets" + where.SQL() + orderBy(params, ticketSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (tickets.Ticket, error) {
		return scanTicket(rows)
	})
	if err != nil {
		return tickets.ListResult{}, fmt.Errorf("list tickets: %w", err)
	}
	return tickets.ListResult{Items: items, Total: total}, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID int64) (*tickets.Ticket, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE ticket_id = $1 AND status = TRUE", ticketID)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tickets.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *TicketRepository) Create(ctx context.Context, params tickets.CreateParams) (*tickets.Ticket, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO tickets (event_id, name, description, price, quantity, max_per_order,
                     sale_start_at, sale_end_at, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+ticketColumns,
		params.EventID,
		params.Name,
		nullableString(params.Description),
		params.Price,
		params.Quantity,
		params.MaxPerOrder,
		params.SaleStartAt,
		params.SaleEndAt,
		params.CreatedBy,
	)
	ticket, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &ticket, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticketID int64, params tickets.UpdateParams) (*tickets.Ticket, error) {
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
	if params.Quantity != nil {
		set.Set("quantity", *params.Quantity)
	}
	if params.MaxPerOrder != nil {
		set.Set("max_per_order", *params.MaxPerOrder)
	}
	if params.SaleStartAt != nil {
		set.Set("sale_start_at", *params.SaleStartAt)
	}
	if params.SaleEndAt != nil {
		set.Set("sale_end_at", *params.SaleEndAt)
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE tickets"+set.SQL()+" WHERE ticket_id = "+set.arg(ticketID)+" AND status = TRUE RETURNING "+ticketColumns,
		set.args...)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tickets.ErrNotFound
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return &ticket, nil
}

func (r *TicketRepository) SoftDelete(ctx context.Context, ticketID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE tickets SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE ticket_id = $1 AND status = TRUE`, ticketID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tickets.ErrNotFound
	}
	return nil
}
