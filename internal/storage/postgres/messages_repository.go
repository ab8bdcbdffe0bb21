package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/messages"
)

var _ messages.Repository = (*MessageRepository)(nil)

type MessageRepository struct {
	pool *pgxpool.Pool
}

const messageColumns = `id, message_id, event_id, sender_id, body,
       status, created_by, updated_by, created_at, updated_at`

var messageSortColumns = map[string]string{
	"created_at": "created_at",
}

func scanMessage(row rowScanner) (messages.Message, error) {
	var m messages.Message
	err := row.Scan(&m.ID, &m.MessageID, &m.EventID, &m.SenderID, &m.Body,
		&m.Status, &m.CreatedBy, &m.UpdatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return messages.Message{}, err
	}
	return m, nil
}

func (r *MessageRepository) List(ctx context.Context, filters messages.Filters, params pagination.Params) (messages.ListResult, error) {
	var where whereBuilder
	if filters.EventID != nil {
		where.Eq("event_id", *filters.EventID)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM messages" + where.SQL()
	listSQL := "SELECT " + messageColumns + " FROM messages" + where.SQL() + orderBy(params, messageSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (messages.Message, error) {
		return scanMessage(rows)
	})
	if err != nil {
		return messages.ListResult{}, fmt.Errorf("list messages: %w", err)
	}
	return messages.ListResult{Items: items, Total: total}, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID int64) (*messages.Message, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE message_id = $1", messageID)
	message, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, messages.ErrNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) Create(ctx context.Context, params messages.CreateParams) (*messages.Message, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO messages (event_id, sender_id, body, created_by)
VALUES ($1, $2, $3, $2)
RETURNING `+messageColumns,
		params.EventID, params.CreatedBy, params.Body)
	message, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) HardDelete(ctx context.Context, messageID int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM messages WHERE message_id = $1", messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return messages.ErrNotFound
	}
	return nil
}
