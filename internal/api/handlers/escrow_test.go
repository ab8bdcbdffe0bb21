package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/entity"
	"github.com/planora/server/internal/domain/escrow"
	"github.com/stretchr/testify/require"
)

type stubEscrowGateway struct {
	createCustomerFn func(req escrow.CreateCustomerRequest) (*escrow.Customer, error)
	getCustomerFn    func(customerID string) (*escrow.Customer, error)
	createTxFn       func(req escrow.CreateTransactionRequest) (*escrow.GatewayTransaction, error)
	getTxFn          func(transactionID string) (*escrow.GatewayTransaction, error)
	updateTxFn       func(transactionID string, req escrow.UpdateTransactionRequest) (*escrow.GatewayTransaction, error)
}

func (s stubEscrowGateway) CreateCustomer(_ context.Context, req escrow.CreateCustomerRequest) (*escrow.Customer, error) {
	return s.createCustomerFn(req)
}

func (s stubEscrowGateway) GetCustomer(_ context.Context, customerID string) (*escrow.Customer, error) {
	return s.getCustomerFn(customerID)
}

func (s stubEscrowGateway) CreateTransaction(_ context.Context, req escrow.CreateTransactionRequest) (*escrow.GatewayTransaction, error) {
	return s.createTxFn(req)
}

func (s stubEscrowGateway) GetTransaction(_ context.Context, transactionID string) (*escrow.GatewayTransaction, error) {
	return s.getTxFn(transactionID)
}

func (s stubEscrowGateway) UpdateTransaction(_ context.Context, transactionID string, req escrow.UpdateTransactionRequest) (*escrow.GatewayTransaction, error) {
	return s.updateTxFn(transactionID, req)
}

type stubEscrowRepo struct {
	listFn         func(filters escrow.Filters, params pagination.Params) (escrow.ListResult, error)
	getByIDFn      func(transactionID int64) (*escrow.Transaction, error)
	createFn       func(params escrow.CreateParams) (*escrow.Transaction, error)
	updateStatusFn func(params escrow.UpdateStatusParams) (*escrow.Transaction, error)
}

func (s stubEscrowRepo) List(_ context.Context, filters escrow.Filters, params pagination.Params) (escrow.ListResult, error) {
	return s.listFn(filters, params)
}

func (s stubEscrowRepo) GetByID(_ context.Context, transactionID int64) (*escrow.Transaction, error) {
	if s.getByIDFn == nil {
		return nil, escrow.ErrNotFound
	}
	return s.getByIDFn(transactionID)
}

func (s stubEscrowRepo) GetByEscrowID(_ context.Context, escrowTransactionID string) (*escrow.Transaction, error) {
	return nil, escrow.ErrNotFound
}

func (s stubEscrowRepo) Create(_ context.Context, params escrow.CreateParams) (*escrow.Transaction, error) {
	if s.createFn == nil {
		return &escrow.Transaction{}, nil
	}
	return s.createFn(params)
}

func (s stubEscrowRepo) UpdateStatus(_ context.Context, params escrow.UpdateStatusParams) (*escrow.Transaction, error) {
	if s.updateStatusFn == nil {
		return nil, escrow.ErrNotFound
	}
	return s.updateStatusFn(params)
}

func TestEscrowHandlerCreateTransaction(t *testing.T) {
	gateway := stubEscrowGateway{
		createTxFn: func(req escrow.CreateTransactionRequest) (*escrow.GatewayTransaction, error) {
			require.Equal(t, "cus_1", req.CustomerID)
			return &escrow.GatewayTransaction{ID: "tx_1", Amount: req.Amount, Status: "funded"}, nil
		},
	}

	h := NewEscrowHandler(escrow.NewService(gateway, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodPost, "/api/v1/escrow/transactions",
		`{"customer_id":"cus_1","amount":250}`)
	res := httptest.NewRecorder()

	h.CreateTransaction(res, req)

	require.Equal(t, http.StatusCreated, res.Code)
}

func TestEscrowHandlerCreateTransactionMissingCustomer(t *testing.T) {
	h := NewEscrowHandler(escrow.NewService(stubEscrowGateway{}, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodPost, "/api/v1/escrow/transactions", `{"amount":250}`)
	res := httptest.NewRecorder()

	h.CreateTransaction(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestEscrowHandlerGetTransactionGatewayNotFound(t *testing.T) {
	gateway := stubEscrowGateway{
		getTxFn: func(transactionID string) (*escrow.GatewayTransaction, error) {
			return nil, escrow.ErrGatewayNotFound
		},
	}

	h := NewEscrowHandler(escrow.NewService(gateway, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions/tx_9", "")
	req.SetPathValue("id", "tx_9")
	res := httptest.NewRecorder()

	h.GetTransaction(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestEscrowHandlerGatewayDownIsBadGateway(t *testing.T) {
	gateway := stubEscrowGateway{
		getTxFn: func(transactionID string) (*escrow.GatewayTransaction, error) {
			return nil, escrow.ErrGatewayUnavailable
		},
	}

	h := NewEscrowHandler(escrow.NewService(gateway, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions/tx_9", "")
	req.SetPathValue("id", "tx_9")
	res := httptest.NewRecorder()

	h.GetTransaction(res, req)

	require.Equal(t, http.StatusBadGateway, res.Code)
}

func TestEscrowHandlerRejectedTransaction(t *testing.T) {
	gateway := stubEscrowGateway{
		createTxFn: func(req escrow.CreateTransactionRequest) (*escrow.GatewayTransaction, error) {
			return nil, escrow.ErrGatewayRejected
		},
	}

	h := NewEscrowHandler(escrow.NewService(gateway, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodPost, "/api/v1/escrow/transactions",
		`{"customer_id":"cus_1","amount":250}`)
	res := httptest.NewRecorder()

	h.CreateTransaction(res, req)

	require.Equal(t, http.StatusUnprocessableEntity, res.Code)
}

func TestEscrowHandlerListScopesToCaller(t *testing.T) {
	var seen escrow.Filters
	repo := stubEscrowRepo{
		listFn: func(filters escrow.Filters, params pagination.Params) (escrow.ListResult, error) {
			seen = filters
			return escrow.ListResult{}, nil
		},
	}

	h := NewEscrowHandler(escrow.NewService(stubEscrowGateway{}, repo), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions", "")
	res := httptest.NewRecorder()

	h.ListTransactions(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, seen.CreatedBy)
	require.Equal(t, int64(42), *seen.CreatedBy)
}

func TestEscrowHandlerGetLocalTransaction(t *testing.T) {
	repo := stubEscrowRepo{
		getByIDFn: func(transactionID int64) (*escrow.Transaction, error) {
			require.Equal(t, int64(5), transactionID)
			return &escrow.Transaction{
				TransactionID:       5,
				EscrowTransactionID: "tx_5",
				Amount:              120,
				Currency:            "USD",
				Status:              escrow.StatusPending,
				Audit:               entity.Audit{CreatedBy: 42},
			}, nil
		},
	}

	h := NewEscrowHandler(escrow.NewService(stubEscrowGateway{}, repo), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions/local/5", "")
	req.SetPathValue("id", "5")
	res := httptest.NewRecorder()

	h.GetLocalTransaction(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `"escrow_transaction_id":"tx_5"`)
}

// Another user's mirror row reads the same as a missing one.
func TestEscrowHandlerGetLocalTransactionOtherUser(t *testing.T) {
	repo := stubEscrowRepo{
		getByIDFn: func(transactionID int64) (*escrow.Transaction, error) {
			return &escrow.Transaction{
				TransactionID: 6,
				Audit:         entity.Audit{CreatedBy: 7},
			}, nil
		},
	}

	h := NewEscrowHandler(escrow.NewService(stubEscrowGateway{}, repo), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions/local/6", "")
	req.SetPathValue("id", "6")
	res := httptest.NewRecorder()

	h.GetLocalTransaction(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestEscrowHandlerGetLocalTransactionMissing(t *testing.T) {
	h := NewEscrowHandler(escrow.NewService(stubEscrowGateway{}, stubEscrowRepo{}), "test")
	req := authedRequest(http.MethodGet, "/api/v1/escrow/transactions/local/9", "")
	req.SetPathValue("id", "9")
	res := httptest.NewRecorder()

	h.GetLocalTransaction(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}
