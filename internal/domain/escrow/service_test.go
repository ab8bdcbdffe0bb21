package escrow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planora/server/internal/api/pagination"
)

type stubGateway struct {
	createTxResp *GatewayTransaction
	createTxErr  error
	getTxResp    *GatewayTransaction
	getTxErr     error
}

func (g *stubGateway) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	return &Customer{ID: "cus_1", Name: req.Name, Email: req.Email}, nil
}

func (g *stubGateway) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	return &Customer{ID: customerID}, nil
}

func (g *stubGateway) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*GatewayTransaction, error) {
	return g.createTxResp, g.createTxErr
}

func (g *stubGateway) GetTransaction(ctx context.Context, transactionID string) (*GatewayTransaction, error) {
	return g.getTxResp, g.getTxErr
}

func (g *stubGateway) UpdateTransaction(ctx context.Context, transactionID string, req UpdateTransactionRequest) (*GatewayTransaction, error) {
	return g.getTxResp, g.getTxErr
}

type stubRepo struct {
	existing  *Transaction
	created   []CreateParams
	createErr error
	updated   []UpdateStatusParams
	updateErr error
}

func (r *stubRepo) List(ctx context.Context, filters Filters, params pagination.Params) (ListResult, error) {
	return ListResult{}, nil
}

func (r *stubRepo) GetByID(ctx context.Context, transactionID int64) (*Transaction, error) {
	return nil, ErrNotFound
}

func (r *stubRepo) GetByEscrowID(ctx context.Context, escrowTransactionID string) (*Transaction, error) {
	if r.existing != nil && r.existing.EscrowTransactionID == escrowTransactionID {
		return r.existing, nil
	}
	return nil, ErrNotFound
}

func (r *stubRepo) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	r.created = append(r.created, params)
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &Transaction{TransactionID: 1, EscrowTransactionID: params.EscrowTransactionID}, nil
}

func (r *stubRepo) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*Transaction, error) {
	r.updated = append(r.updated, params)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &Transaction{EscrowTransactionID: params.EscrowTransactionID, Status: params.Status}, nil
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		gateway string
		want    string
	}{
		{"funded", StatusCompleted},
		{"Funded", StatusCompleted},
		{"completed", StatusCompleted},
		{"COMPLETED", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"failed", StatusFailed},
		{"awaiting_payment", StatusPending},
		{"", StatusPending},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, MapStatus(tc.gateway), "gateway status %q", tc.gateway)
	}
}

func TestCreateTransactionRecordsLocalMirror(t *testing.T) {
	gateway := &stubGateway{
		createTxResp: &GatewayTransaction{ID: "tx_1", Status: "Funded", Amount: 500},
	}
	repo := &stubRepo{}
	svc := NewService(gateway, repo)

	eventID := int64(7)
	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		CustomerID: "cus_1",
		Amount:     500,
		EventID:    &eventID,
	}, 42)
	require.NoError(t, err)
	require.Equal(t, "tx_1", tx.ID)

	require.Len(t, repo.created, 1)
	local := repo.created[0]
	require.Equal(t, "tx_1", local.EscrowTransactionID)
	require.Equal(t, StatusCompleted, local.Status)
	require.Equal(t, float64(500), local.Amount)
	require.Equal(t, "USD", local.Currency)
	require.Equal(t, int64(42), local.CreatedBy)
	require.Equal(t, &eventID, local.EventID)
}

func TestCreateTransactionRefreshesExistingMirror(t *testing.T) {
	gateway := &stubGateway{
		createTxResp: &GatewayTransaction{ID: "tx_1", Status: "funded", Amount: 500},
	}
	repo := &stubRepo{
		existing: &Transaction{TransactionID: 3, EscrowTransactionID: "tx_1", Status: StatusPending},
	}
	svc := NewService(gateway, repo)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		CustomerID: "cus_1",
		Amount:     500,
	}, 42)
	require.NoError(t, err)

	require.Empty(t, repo.created)
	require.Len(t, repo.updated, 1)
	require.Equal(t, "tx_1", repo.updated[0].EscrowTransactionID)
	require.Equal(t, StatusCompleted, repo.updated[0].Status)
	require.Equal(t, int64(42), repo.updated[0].UpdatedBy)
}

func TestCreateTransactionSwallowsLocalFailure(t *testing.T) {
	gateway := &stubGateway{
		createTxResp: &GatewayTransaction{ID: "tx_2", Status: "pending", Amount: 10},
	}
	repo := &stubRepo{createErr: errors.New("db down")}
	svc := NewService(gateway, repo)

	tx, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		CustomerID: "cus_1",
		Amount:     10,
	}, 1)
	require.NoError(t, err)
	require.Equal(t, "tx_2", tx.ID)
}

func TestCreateTransactionGatewayErrorShortCircuits(t *testing.T) {
	gateway := &stubGateway{createTxErr: ErrGatewayRejected}
	repo := &stubRepo{}
	svc := NewService(gateway, repo)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		CustomerID: "cus_1",
		Amount:     10,
	}, 1)
	require.ErrorIs(t, err, ErrGatewayRejected)
	require.Empty(t, repo.created)
}

func TestGetTransactionResyncsLocal(t *testing.T) {
	gateway := &stubGateway{
		getTxResp: &GatewayTransaction{ID: "tx_3", Status: "cancelled", Amount: 25},
	}
	repo := &stubRepo{}
	svc := NewService(gateway, repo)

	tx, err := svc.GetTransaction(context.Background(), "tx_3", 9)
	require.NoError(t, err)
	require.Equal(t, "cancelled", tx.Status)

	require.Len(t, repo.updated, 1)
	require.Equal(t, StatusCancelled, repo.updated[0].Status)
	require.Equal(t, int64(9), repo.updated[0].UpdatedBy)
}

func TestGetTransactionMissingLocalRowIsNotAnError(t *testing.T) {
	gateway := &stubGateway{
		getTxResp: &GatewayTransaction{ID: "tx_4", Status: "failed", Amount: 25},
	}
	repo := &stubRepo{updateErr: ErrNotFound}
	svc := NewService(gateway, repo)

	_, err := svc.GetTransaction(context.Background(), "tx_4", 9)
	require.NoError(t, err)
}

func TestStatusError(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{http.StatusOK, nil},
		{http.StatusCreated, nil},
		{http.StatusUnauthorized, ErrGatewayAuth},
		{http.StatusForbidden, ErrGatewayForbidden},
		{http.StatusNotFound, ErrGatewayNotFound},
		{http.StatusUnprocessableEntity, ErrGatewayRejected},
		{http.StatusBadGateway, ErrGatewayUnavailable},
		{http.StatusInternalServerError, ErrGatewayUnavailable},
	}
	for _, tc := range cases {
		err := statusError(tc.code)
		if tc.want == nil {
			require.NoError(t, err, "status %d", tc.code)
			continue
		}
		require.ErrorIs(t, err, tc.want, "status %d", tc.code)
	}
}

func TestParseFiltersRejectsBadStatus(t *testing.T) {
	_, _, err := ParseFilters(map[string][]string{"tx_status": {"paid"}})
	var perr pagination.ParamError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "tx_status", perr.Field)
}
