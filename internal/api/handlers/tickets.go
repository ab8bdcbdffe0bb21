package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/tickets"
)

type TicketsHandler struct {
	Service *tickets.Service
	Env     string
}

func NewTicketsHandler(service *tickets.Service, env string) *TicketsHandler {
	return &TicketsHandler{Service: service, Env: env}
}

type createTicketRequest struct {
	EventID     int64      `json:"event_id" validate:"required,gt=0"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Price       float64    `json:"price" validate:"gte=0"`
	Quantity    int        `json:"quantity" validate:"required,gt=0"`
	MaxPerOrder *int       `json:"max_per_order" validate:"omitempty,gt=0"`
	SaleStartAt *time.Time `json:"sale_start_at"`
	SaleEndAt   *time.Time `json:"sale_end_at"`
}

type updateTicketRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Price       *float64   `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int       `json:"quantity" validate:"omitempty,gt=0"`
	MaxPerOrder *int       `json:"max_per_order" validate:"omitempty,gt=0"`
	SaleStartAt *time.Time `json:"sale_start_at"`
	SaleEndAt   *time.Time `json:"sale_end_at"`
}

func (h *TicketsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := tickets.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "tickets fetched", result.Items, params, result.Total)
}

func (h *TicketsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := tickets.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	filters.CreatedBy = &userID

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "tickets fetched", result.Items, params, result.Total)
}

func (h *TicketsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	ticket, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "ticket fetched", ticket)
}

func (h *TicketsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	ticket, err := h.Service.Create(r.Context(), tickets.CreateParams{
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MaxPerOrder: req.MaxPerOrder,
		SaleStartAt: req.SaleStartAt,
		SaleEndAt:   req.SaleEndAt,
		CreatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "ticket created", ticket)
}

func (h *TicketsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateTicketRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	ticket, err := h.Service.Update(r.Context(), id, tickets.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MaxPerOrder: req.MaxPerOrder,
		SaleStartAt: req.SaleStartAt,
		SaleEndAt:   req.SaleEndAt,
		UpdatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "ticket updated", ticket)
}

func (h *TicketsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, tickets.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "ticket deleted", nil)
}
