package escrow

import (
	"context"
	"errors"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
)

var ErrNotFound = errors.New("escrow transaction not found")

// Transaction is the local bookkeeping record for a gateway transaction.
// The gateway remains the source of truth; this row is a best-effort mirror.
type Transaction struct {
	ID                  string  `json:"-"`
	TransactionID       int64   `json:"transaction_id"`
	EscrowTransactionID string  `json:"escrow_transaction_id"`
	EventID             *int64  `json:"event_id,omitempty"`
	Amount              float64 `json:"amount"`
	Currency            string  `json:"currency"`
	Status              string  `json:"status"`
	entity.Audit
}

// Local transaction statuses derived from gateway states.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

type Filters struct {
	EventID   *int64
	Status    *string
	CreatedBy *int64
}

type ListResult struct {
	Items []Transaction
	Total int
}

type CreateParams struct {
	EscrowTransactionID string
	EventID             *int64
	Amount              float64
	Currency            string
	Status              string
	CreatedBy           int64
}

type UpdateStatusParams struct {
	EscrowTransactionID string
	Status              string
	UpdatedBy           int64
}

type Repository interface {
	List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error)
	GetByID(ctx context.Context, transactionID int64) (*Transaction, error)
	GetByEscrowID(ctx context.Context, escrowTransactionID string) (*Transaction, error)
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*Transaction, error)
}
