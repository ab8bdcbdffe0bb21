package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/guests"
)

type GuestsHandler struct {
	Service *guests.Service
	Env     string
}

func NewGuestsHandler(service *guests.Service, env string) *GuestsHandler {
	return &GuestsHandler{Service: service, Env: env}
}

type createGuestRequest struct {
	EventID    *int64 `json:"event_id" validate:"omitempty,gt=0"`
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	RSVPStatus string `json:"rsvp_status" validate:"omitempty,oneof=pending accepted declined"`
	Seats      int    `json:"seats" validate:"omitempty,gte=1,lte=50"`
}

type updateGuestRequest struct {
	EventID    *int64  `json:"event_id" validate:"omitempty,gt=0"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	RSVPStatus *string `json:"rsvp_status" validate:"omitempty,oneof=pending accepted declined"`
	Seats      *int    `json:"seats" validate:"omitempty,gte=1,lte=50"`
}

func (h *GuestsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := guests.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "guests fetched", result.Items, params, result.Total)
}

func (h *GuestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := guests.ParseFilters(r.URL.Query())
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
	writeList(w, "guests fetched", result.Items, params, result.Total)
}

func (h *GuestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	guest, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "guest fetched", guest)
}

func (h *GuestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGuestRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	guest, err := h.Service.Create(r.Context(), guests.CreateParams{
		EventID:    req.EventID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RSVPStatus: req.RSVPStatus,
		Seats:      req.Seats,
		CreatedBy:  middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "guest created", guest)
}

func (h *GuestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateGuestRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	guest, err := h.Service.Update(r.Context(), id, guests.UpdateParams{
		EventID:    req.EventID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RSVPStatus: req.RSVPStatus,
		Seats:      req.Seats,
		UpdatedBy:  middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "guest updated", guest)
}

func (h *GuestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, guests.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "guest deleted", nil)
}
