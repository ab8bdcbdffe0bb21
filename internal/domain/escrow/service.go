package escrow

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/planora/server/internal/api/pagination"
)

// SortableFields lists the columns transaction listings may sort by.
var SortableFields = []string{"created_at", "updated_at", "amount"}

// GatewayClient is what the service needs from the payment gateway.
type GatewayClient interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*GatewayTransaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*GatewayTransaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req UpdateTransactionRequest) (*GatewayTransaction, error)
}

// Service fronts the escrow gateway. The gateway is the source of truth for
// money movement; the local repository only mirrors transactions so listings
// and reports work without a gateway round trip.
type Service struct {
	gateway GatewayClient
	repo    Repository
}

func NewService(gateway GatewayClient, repo Repository) *Service {
	return &Service{gateway: gateway, repo: repo}
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	return s.gateway.CreateCustomer(ctx, req)
}

func (s *Service) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return s.gateway.GetCustomer(ctx, customerID)
}

// CreateTransaction creates the transaction at the gateway and then records a
// local mirror row. Gateway failure fails the call; local bookkeeping failure
// does not, since the gateway already holds the funds.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest, userID int64) (*GatewayTransaction, error) {
	tx, err := s.gateway.CreateTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	// A retried create can hand back a gateway transaction we already
	// mirrored; refresh that row instead of inserting a duplicate.
	existing, err := s.repo.GetByEscrowID(ctx, tx.ID)
	switch {
	case err == nil && existing != nil:
		s.syncLocal(ctx, tx, userID)
		return tx, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("escrow_transaction_id", tx.ID).
			Msg("local escrow record lookup failed")
		return tx, nil
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	_, err = s.repo.Create(ctx, CreateParams{
		EscrowTransactionID: tx.ID,
		EventID:             req.EventID,
		Amount:              tx.Amount,
		Currency:            currency,
		Status:              MapStatus(tx.Status),
		CreatedBy:           userID,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("escrow_transaction_id", tx.ID).
			Msg("local escrow record create failed")
	}
	return tx, nil
}

// GetTransaction fetches the live state from the gateway and re-syncs the
// local mirror. A missing local row is not an error.
func (s *Service) GetTransaction(ctx context.Context, transactionID string, userID int64) (*GatewayTransaction, error) {
	tx, err := s.gateway.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	s.syncLocal(ctx, tx, userID)
	return tx, nil
}

// UpdateTransaction forwards the update to the gateway and re-syncs the local
// mirror with whatever state the gateway reports back.
func (s *Service) UpdateTransaction(ctx context.Context, transactionID string, req UpdateTransactionRequest, userID int64) (*GatewayTransaction, error) {
	tx, err := s.gateway.UpdateTransaction(ctx, transactionID, req)
	if err != nil {
		return nil, err
	}
	s.syncLocal(ctx, tx, userID)
	return tx, nil
}

func (s *Service) syncLocal(ctx context.Context, tx *GatewayTransaction, userID int64) {
	_, err := s.repo.UpdateStatus(ctx, UpdateStatusParams{
		EscrowTransactionID: tx.ID,
		Status:              MapStatus(tx.Status),
		UpdatedBy:           userID,
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("escrow_transaction_id", tx.ID).
			Msg("local escrow record sync failed")
	}
}

// ListLocal lists the locally mirrored transactions.
func (s *Service) ListLocal(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return s.repo.List(ctx, filters, params)
}

func (s *Service) GetLocalByID(ctx context.Context, transactionID int64) (*Transaction, error) {
	return s.repo.GetByID(ctx, transactionID)
}

// ParseFilters extracts escrow listing filters from query parameters.
func ParseFilters(values url.Values) (Filters, pagination.Params, error) {
	params, err := pagination.Parse(values, SortableFields)
	if err != nil {
		return Filters{}, pagination.Params{}, err
	}

	var filters Filters
	if raw := values.Get("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "event_id", Message: "must be a positive number"}
		}
		filters.EventID = &id
	}
	if raw := values.Get("tx_status"); raw != "" {
		switch raw {
		case StatusPending, StatusCompleted, StatusCancelled, StatusFailed:
			filters.Status = &raw
		default:
			return Filters{}, pagination.Params{}, pagination.ParamError{Field: "tx_status", Message: "must be pending, completed, cancelled or failed"}
		}
	}
	return filters, params, nil
}
