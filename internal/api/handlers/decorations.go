package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/decorations"
)

type DecorationsHandler struct {
	Service *decorations.Service
	Env     string
}

func NewDecorationsHandler(service *decorations.Service, env string) *DecorationsHandler {
	return &DecorationsHandler{Service: service, Env: env}
}

type createDecorationRequest struct {
	VendorID    *int64  `json:"vendor_id" validate:"omitempty,gt=0"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Theme       string  `json:"theme" validate:"max=120"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

type updateDecorationRequest struct {
	VendorID    *int64   `json:"vendor_id" validate:"omitempty,gt=0"`
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Theme       *string  `json:"theme" validate:"omitempty,max=120"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}

func (h *DecorationsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := decorations.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "decorations fetched", result.Items, params, result.Total)
}

func (h *DecorationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := decorations.ParseFilters(r.URL.Query())
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
	writeList(w, "decorations fetched", result.Items, params, result.Total)
}

func (h *DecorationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	decoration, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, decorations.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "decoration fetched", decoration)
}

func (h *DecorationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDecorationRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	decoration, err := h.Service.Create(r.Context(), decorations.CreateParams{
		VendorID:    req.VendorID,
		Name:        req.Name,
		Description: req.Description,
		Theme:       req.Theme,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "decoration created", decoration)
}

func (h *DecorationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateDecorationRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	decoration, err := h.Service.Update(r.Context(), id, decorations.UpdateParams{
		VendorID:    req.VendorID,
		Name:        req.Name,
		Description: req.Description,
		Theme:       req.Theme,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		UpdatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, decorations.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "decoration updated", decoration)
}

func (h *DecorationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, decorations.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "decoration deleted", nil)
}
