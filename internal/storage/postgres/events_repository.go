package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `id, event_id, name, description, venue, city, event_type_id,
       start_date, end_date, guest_capacity, budget, cover_image_url,
       status, created_by, updated_by, created_at, updated_at`

var eventSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
	"start_date": "start_date",
	"budget":     "budget",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (events.Event, error) {
	var (
		e                               events.Event
		description, venue, city, cover *string
	)
	err := row.Scan(
		&e.ID, &e.EventID, &e.Name, &description, &venue, &city, &e.EventTypeID,
		&e.StartDate, &e.EndDate, &e.GuestCapacity, &e.Budget, &cover,
		&e.Status, &e.CreatedBy, &e.UpdatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return events.Event{}, err
	}
	e.Description = derefString(description)
	e.Venue = derefString(venue)
	e.City = derefString(city)
	e.CoverImageURL = derefString(cover)
	return e, nil
}

func (r *EventRepository) List(ctx context.Context, filters events.Filters, params pagination.Params) (events.ListResult, error) {
	var where whereBuilder
	where.Search(filters.Search, "name", "description", "venue", "city")
	if filters.EventTypeID != nil {
		where.Eq("event_type_id", *filters.EventTypeID)
	}
	if filters.City != "" {
		where.Eq("city", filters.City)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM events" + where.SQL()
	listSQL := "SELECT " + eventColumns + " FROM events" + where.SQL() + orderBy(params, eventSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (events.Event, error) {
		return scanEvent(rows)
	})
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	return events.ListResult{Items: items, Total: total}, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID int64) (*events.Event, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM events WHERE event_id = $1 AND status = TRUE", eventID)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO events (name, description, venue, city, event_type_id, start_date,
                    end_date, guest_capacity, budget, cover_image_url, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+eventColumns,
		params.Name,
		nullableString(params.Description),
		nullableString(params.Venue),
		nullableString(params.City),
		params.EventTypeID,
		params.StartDate,
		params.EndDate,
		params.GuestCapacity,
		params.Budget,
		nullableString(params.CoverImageURL),
		params.CreatedBy,
	)
	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, eventID int64, params events.UpdateParams) (*events.Event, error) {
	var set setBuilder
	if params.Name != nil {
		set.Set("name", *params.Name)
	}
	if params.Description != nil {
		set.Set("description", nullableString(*params.Description))
	}
	if params.Venue != nil {
		set.Set("venue", nullableString(*params.Venue))
	}
	if params.City != nil {
		set.Set("city", nullableString(*params.City))
	}
	if params.EventTypeID != nil {
		set.Set("event_type_id", *params.EventTypeID)
	}
	if params.StartDate != nil {
		set.Set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		set.Set("end_date", *params.EndDate)
	}
	if params.GuestCapacity != nil {
		set.Set("guest_capacity", *params.GuestCapacity)
	}
	if params.Budget != nil {
		set.Set("budget", *params.Budget)
	}
	if params.CoverImageURL != nil {
		set.Set("cover_image_url", nullableString(*params.CoverImageURL))
	}
	set.Set("updated_by", params.UpdatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE events"+set.SQL()+" WHERE event_id = "+set.arg(eventID)+" AND status = TRUE RETURNING "+eventColumns,
		set.args...)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) SoftDelete(ctx context.Context, eventID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE events SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE event_id = $1 AND status = TRUE`, eventID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

const eventTypeColumns = `id, event_type_id, name, description, status, created_by, updated_by, created_at, updated_at`

var eventTypeSortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func scanEventType(row rowScanner) (events.EventType, error) {
	var (
		t           events.EventType
		description *string
	)
	err := row.Scan(&t.ID, &t.EventTypeID, &t.Name, &description,
		&t.Status, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return events.EventType{}, err
	}
	t.Description = derefString(description)
	return t, nil
}

func (r *EventRepository) ListTypes(ctx context.Context, search string, params pagination.Params) ([]events.EventType, int, error) {
	var where whereBuilder
	where.Search(search, "name", "description")
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM event_types" + where.SQL()
	listSQL := "SELECT " + eventTypeColumns + " FROM event_types" + where.SQL() + orderBy(params, eventTypeSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (events.EventType, error) {
		return scanEventType(rows)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list event types: %w", err)
	}
	return items, total, nil
}

func (r *EventRepository) GetTypeByID(ctx context.Context, eventTypeID int64) (*events.EventType, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+eventTypeColumns+" FROM event_types WHERE event_type_id = $1 AND status = TRUE", eventTypeID)
	eventType, err := scanEventType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrTypeNotFound
		}
		return nil, fmt.Errorf("get event type: %w", err)
	}
	return &eventType, nil
}

func (r *EventRepository) CreateType(ctx context.Context, name, description string, createdBy int64) (*events.EventType, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO event_types (name, description, created_by)
VALUES ($1, $2, $3)
RETURNING `+eventTypeColumns,
		name, nullableString(description), createdBy)
	eventType, err := scanEventType(row)
	if err != nil {
		return nil, fmt.Errorf("create event type: %w", err)
	}
	return &eventType, nil
}

func (r *EventRepository) UpdateType(ctx context.Context, eventTypeID int64, name, description *string, updatedBy int64) (*events.EventType, error) {
	var set setBuilder
	if name != nil {
		set.Set("name", *name)
	}
	if description != nil {
		set.Set("description", nullableString(*description))
	}
	set.Set("updated_by", updatedBy)

	row := r.pool.QueryRow(ctx,
		"UPDATE event_types"+set.SQL()+" WHERE event_type_id = "+set.arg(eventTypeID)+" AND status = TRUE RETURNING "+eventTypeColumns,
		set.args...)
	eventType, err := scanEventType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrTypeNotFound
		}
		return nil, fmt.Errorf("update event type: %w", err)
	}
	return &eventType, nil
}

func (r *EventRepository) SoftDeleteType(ctx context.Context, eventTypeID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE event_types SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE event_type_id = $1 AND status = TRUE`, eventTypeID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete event type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrTypeNotFound
	}
	return nil
}
