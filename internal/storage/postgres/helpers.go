package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/planora/server/internal/api/pagination"
)

// whereBuilder accumulates WHERE clauses with positional arguments. Listing
// queries share one builder between their COUNT and page statements so both
// see the same filter set.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) arg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Eq adds an exact-match clause.
func (b *whereBuilder) Eq(column string, value any) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s = %s", column, b.arg(value)))
}

// Search adds a case-insensitive substring match ORed across columns.
// Empty terms add nothing.
func (b *whereBuilder) Search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return
	}
	placeholder := b.arg("%" + term + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, placeholder)
	}
	b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
}

// Status adds the tri-state soft-delete filter: nil adds nothing.
func (b *whereBuilder) Status(status *bool) {
	if status != nil {
		b.Eq("status", *status)
	}
}

// SQL renders the WHERE fragment, or an empty string when unfiltered.
func (b *whereBuilder) SQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// orderBy renders the ORDER BY / LIMIT / OFFSET tail for a page query. The
// sort key has already passed the entity whitelist, and sort columns never
// come from raw input, so interpolation is safe here.
func orderBy(params pagination.Params, columns map[string]string) string {
	column, ok := columns[params.SortBy]
	if !ok {
		column = params.SortBy
	}
	direction := "DESC"
	if params.SortOrder == pagination.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s LIMIT %d OFFSET %d", column, direction, params.Limit, params.Offset())
}

// countAndList runs the COUNT and page queries concurrently. The two
// statements run on separate connections without a shared snapshot, so the
// total can drift from the page under concurrent writes.
func countAndList[T any](
	ctx context.Context,
	pool *pgxpool.Pool,
	countSQL, listSQL string,
	args []any,
	scan func(pgx.Rows) (T, error),
) ([]T, int, error) {
	var (
		total int
		items []T
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := pool.Query(ctx, listSQL, args...)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// setBuilder accumulates SET assignments for partial updates.
type setBuilder struct {
	assignments []string
	args        []any
}

func (b *setBuilder) arg(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Set adds an unconditional assignment.
func (b *setBuilder) Set(column string, value any) {
	b.assignments = append(b.assignments, fmt.Sprintf("%s = %s", column, b.arg(value)))
}

// SQL renders "SET a = $1, b = $2, updated_at = now()".
func (b *setBuilder) SQL() string {
	return " SET " + strings.Join(append(b.assignments, "updated_at = now()"), ", ")
}

// derefString returns the empty string for a nil pointer.
func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// nullableString maps "" to NULL so optional text columns stay NULL.
func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
