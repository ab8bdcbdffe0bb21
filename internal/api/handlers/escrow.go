package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/escrow"
)

// EscrowHandler passes customer and transaction operations through to the
// payment gateway and keeps a best-effort local mirror for listings.
type EscrowHandler struct {
	Service *escrow.Service
	Env     string
}

func NewEscrowHandler(service *escrow.Service, env string) *EscrowHandler {
	return &EscrowHandler{Service: service, Env: env}
}

func (h *EscrowHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req escrow.CreateCustomerRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), req)
	if err != nil {
		h.writeGatewayError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "escrow customer created", customer)
}

func (h *EscrowHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	if customerID == "" {
		problem.Validation(w, r, errors.New("missing customer id"), h.Env)
		return
	}

	customer, err := h.Service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.writeGatewayError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "escrow customer fetched", customer)
}

func (h *EscrowHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req escrow.CreateTransactionRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), req, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeGatewayError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "escrow transaction created", tx)
}

func (h *EscrowHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("id")
	if transactionID == "" {
		problem.Validation(w, r, errors.New("missing transaction id"), h.Env)
		return
	}

	tx, err := h.Service.GetTransaction(r.Context(), transactionID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeGatewayError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "escrow transaction fetched", tx)
}

func (h *EscrowHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("id")
	if transactionID == "" {
		problem.Validation(w, r, errors.New("missing transaction id"), h.Env)
		return
	}

	var req escrow.UpdateTransactionRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	tx, err := h.Service.UpdateTransaction(r.Context(), transactionID, req, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeGatewayError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "escrow transaction updated", tx)
}

// ListTransactions serves the local mirror, not the gateway.
func (h *EscrowHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filters, params, err := escrow.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	filters.CreatedBy = &userID

	result, err := h.Service.ListLocal(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "escrow transactions fetched", result.Items, params, result.Total)
}

// GetLocalTransaction serves a single mirrored row by its local numeric id
// without a gateway round trip. Rows created by other users read as missing.
func (h *EscrowHandler) GetLocalTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	tx, err := h.Service.GetLocalByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, escrow.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	if tx.CreatedBy != middleware.UserIDFromContext(r.Context()) {
		problem.NotFound(w, r, escrow.ErrNotFound, h.Env)
		return
	}
	writeData(w, http.StatusOK, "escrow transaction fetched", tx)
}

// writeGatewayError maps the escrow client's error taxonomy onto HTTP
// statuses. Upstream auth failures surface as 502 because they are a server
// configuration problem, not a caller problem.
func (h *EscrowHandler) writeGatewayError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, escrow.ErrGatewayNotFound):
		problem.NotFound(w, r, err, h.Env)
	case errors.Is(err, escrow.ErrGatewayRejected):
		problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeUpstream, "Gateway error", err, h.Env,
			problem.WithDetail(err.Error()))
	case errors.Is(err, escrow.ErrGatewayAuth),
		errors.Is(err, escrow.ErrGatewayForbidden),
		errors.Is(err, escrow.ErrGatewayUnavailable):
		problem.Upstream(w, r, http.StatusBadGateway, err, h.Env, problem.WithDetail(err.Error()))
	default:
		problem.ServerError(w, r, err, h.Env)
	}
}
