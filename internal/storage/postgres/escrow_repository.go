package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/escrow"
)

var _ escrow.Repository = (*EscrowRepository)(nil)

type EscrowRepository struct {
	pool *pgxpool.Pool
}

const escrowColumns = `id, transaction_id, escrow_transaction_id, event_id, amount,
       currency, tx_status, status, created_by, updated_by, created_at, updated_at`

var escrowSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"amount":     "amount",
}

func scanEscrowTransaction(row rowScanner) (escrow.Transaction, error) {
	var t escrow.Transaction
	err := row.Scan(&t.ID, &t.TransactionID, &t.EscrowTransactionID, &t.EventID,
		&t.Amount, &t.Currency, &t.Status,
		&t.Audit.Status, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return escrow.Transaction{}, err
	}
	return t, nil
}

func (r *EscrowRepository) List(ctx context.Context, filters escrow.Filters, params pagination.Params) (escrow.ListResult, error) {
	var where whereBuilder
	if filters.EventID != nil {
		where.Eq("event_id", *filters.EventID)
	}
	if filters.Status != nil {
		where.Eq("tx_status", *filters.Status)
	}
	if filters.CreatedBy != nil {
		where.Eq("created_by", *filters.CreatedBy)
	}
	where.Status(params.Status)

	countSQL := "SELECT count(*) FROM escrow_transactions" + where.SQL()
	listSQL := "SELECT " + escrowColumns + " FROM escrow_transactions" + where.SQL() + orderBy(params, escrowSortColumns)

	items, total, err := countAndList(ctx, r.pool, countSQL, listSQL, where.args, func(rows pgx.Rows) (escrow.Transaction, error) {
		return scanEscrowTransaction(rows)
	})
	if err != nil {
		return escrow.ListResult{}, fmt.Errorf("list escrow transactions: %w", err)
	}
	return escrow.ListResult{Items: items, Total: total}, nil
}

func (r *EscrowRepository) GetByID(ctx context.Context, transactionID int64) (*escrow.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+escrowColumns+" FROM escrow_transactions WHERE transaction_id = $1 AND status = TRUE", transactionID)
	tx, err := scanEscrowTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, escrow.ErrNotFound
		}
		return nil, fmt.Errorf("get escrow transaction: %w", err)
	}
	return &tx, nil
}

func (r *EscrowRepository) GetByEscrowID(ctx context.Context, escrowTransactionID string) (*escrow.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+escrowColumns+" FROM escrow_transactions WHERE escrow_transaction_id = $1 AND status = TRUE", escrowTransactionID)
	tx, err := scanEscrowTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, escrow.ErrNotFound
		}
		return nil, fmt.Errorf("get escrow transaction by gateway id: %w", err)
	}
	return &tx, nil
}

func (r *EscrowRepository) Create(ctx context.Context, params escrow.CreateParams) (*escrow.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO escrow_transactions (escrow_transaction_id, event_id, amount, currency, tx_status, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+escrowColumns,
		params.EscrowTransactionID,
		params.EventID,
		params.Amount,
		params.Currency,
		params.Status,
		params.CreatedBy,
	)
	tx, err := scanEscrowTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("create escrow transaction: %w", err)
	}
	return &tx, nil
}

func (r *EscrowRepository) UpdateStatus(ctx context.Context, params escrow.UpdateStatusParams) (*escrow.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE escrow_transactions SET tx_status = $2, updated_by = $3, updated_at = now()
 WHERE escrow_transaction_id = $1 AND status = TRUE
RETURNING `+escrowColumns,
		params.EscrowTransactionID, params.Status, params.UpdatedBy)
	tx, err := scanEscrowTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, escrow.ErrNotFound
		}
		return nil, fmt.Errorf("update escrow transaction: %w", err)
	}
	return &tx, nil
}
