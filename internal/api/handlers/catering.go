package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/catering"
)

type CateringHandler struct {
	Service *catering.Service
	Env     string
}

func NewCateringHandler(service *catering.Service, env string) *CateringHandler {
	return &CateringHandler{Service: service, Env: env}
}

type createCateringPackageRequest struct {
	VendorID      *int64  `json:"vendor_id" validate:"omitempty,gt=0"`
	Name          string  `json:"name" validate:"required,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Cuisine       string  `json:"cuisine" validate:"max=120"`
	PricePerPlate float64 `json:"price_per_plate" validate:"required,gt=0"`
	MinGuests     *int    `json:"min_guests" validate:"omitempty,gt=0"`
	MaxGuests     *int    `json:"max_guests" validate:"omitempty,gt=0"`
	Vegetarian    bool    `json:"vegetarian"`
}

type updateCateringPackageRequest struct {
	VendorID      *int64   `json:"vendor_id" validate:"omitempty,gt=0"`
	Name          *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Cuisine       *string  `json:"cuisine" validate:"omitempty,max=120"`
	PricePerPlate *float64 `json:"price_per_plate" validate:"omitempty,gt=0"`
	MinGuests     *int     `json:"min_guests" validate:"omitempty,gt=0"`
	MaxGuests     *int     `json:"max_guests" validate:"omitempty,gt=0"`
	Vegetarian    *bool    `json:"vegetarian"`
}

func (h *CateringHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := catering.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "catering packages fetched", result.Items, params, result.Total)
}

func (h *CateringHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := catering.ParseFilters(r.URL.Query())
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
	writeList(w, "catering packages fetched", result.Items, params, result.Total)
}

func (h *CateringHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	pkg, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catering.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "catering package fetched", pkg)
}

func (h *CateringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCateringPackageRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	pkg, err := h.Service.Create(r.Context(), catering.CreateParams{
		VendorID:      req.VendorID,
		Name:          req.Name,
		Description:   req.Description,
		Cuisine:       req.Cuisine,
		PricePerPlate: req.PricePerPlate,
		MinGuests:     req.MinGuests,
		MaxGuests:     req.MaxGuests,
		Vegetarian:    req.Vegetarian,
		CreatedBy:     middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "catering package created", pkg)
}

func (h *CateringHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateCateringPackageRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	pkg, err := h.Service.Update(r.Context(), id, catering.UpdateParams{
		VendorID:      req.VendorID,
		Name:          req.Name,
		Description:   req.Description,
		Cuisine:       req.Cuisine,
		PricePerPlate: req.PricePerPlate,
		MinGuests:     req.MinGuests,
		MaxGuests:     req.MaxGuests,
		Vegetarian:    req.Vegetarian,
		UpdatedBy:     middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, catering.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "catering package updated", pkg)
}

func (h *CateringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, catering.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "catering package deleted", nil)
}
