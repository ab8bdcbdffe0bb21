package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/notifications"
)

var _ notifications.Repository = (*NotificationRepository)(nil)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

const notificationColumns = `id, notification_id, user_id, title, body, read,
       status, created_by, updated_by, created_at, updated_at`

var notificationSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func scanNotification(row rowScanner) (notifications.Notification, error) {
	var (
		n    notifications.Notification
		body *string
	)
	err := row.Scan(&n.ID, &n.NotificationID, &n.UserID, &n.Title, &body, &n.Read,
		&n.Status, &n.CreatedBy, &n.UpdatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return notifications.Notification{}, err
	}
	n.Body = derefString(body)
	return n, nil
}

func (r *NotificationRepository) List(ctx context.Context, filters notifications.Filters, params pagination.Params) (notifications.ListResult, error) {
	var where whereBuilder
	if filters.UserID != nil {
		where.Eq("user_id", *filters.UserID)
	}
	if filters.Read != nil {
		where.Eq("read", *filters.Read)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM notifications" + where.SQL()
	listSQL := "SELECT " + notificationColumns + " FROM notifications" + where.SQL() + orderBy(params, notificationSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (notifications.Notification, error) {
		return scanNotification(rows)
	})
	if err != nil {
		return notifications.ListResult{}, fmt.Errorf("list notifications: %w", err)
	}
	return notifications.ListResult{Items: items, Total: total}, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, notificationID int64) (*notifications.Notification, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE notification_id = $1 AND status = TRUE", notificationID)
	notification, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notifications.ErrNotFound
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &notification, nil
}

func (r *NotificationRepository) Create(ctx context.Context, params notifications.CreateParams) (*notifications.Notification, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO notifications (user_id, title, body, created_by)
VALUES ($1, $2, $3, $4)
RETURNING `+notificationColumns,
		params.UserID, params.Title, nullableString(params.Body), params.CreatedBy)
	notification, err := scanNotification(row)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return &notification, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID int64, updatedBy int64) (*notifications.Notification, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE notifications SET read = TRUE, updated_by = $2, updated_at = now()
 WHERE notification_id = $1 AND status = TRUE
RETURNING `+notificationColumns, notificationID, updatedBy)
	notification, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notifications.ErrNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return &notification, nil
}

func (r *NotificationRepository) SoftDelete(ctx context.Context, notificationID int64, deletedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE notifications SET status = FALSE, updated_by = $2, updated_at = now()
 WHERE notification_id = $1 AND status = TRUE`, notificationID, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notifications.ErrNotFound
	}
	return nil
}
