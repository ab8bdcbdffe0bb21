package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/vendors"
)

type VendorsHandler struct {
	Service *vendors.Service
	Env     string
}

func NewVendorsHandler(service *vendors.Service, env string) *VendorsHandler {
	return &VendorsHandler{Service: service, Env: env}
}

type createVendorRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,gt=0"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	City        string `json:"city" validate:"max=120"`
	Address     string `json:"address" validate:"max=300"`
}

type updateVendorRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	CategoryID  *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	City        *string  `json:"city" validate:"omitempty,max=120"`
	Address     *string  `json:"address" validate:"omitempty,max=300"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := vendors.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "vendors fetched", result.Items, params, result.Total)
}

func (h *VendorsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := vendors.ParseFilters(r.URL.Query())
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
	writeList(w, "vendors fetched", result.Items, params, result.Total)
}

func (h *VendorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	vendor, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vendors.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor fetched", vendor)
}

func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	vendor, err := h.Service.Create(r.Context(), vendors.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		Address:     req.Address,
		CreatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "vendor created", vendor)
}

func (h *VendorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateVendorRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	vendor, err := h.Service.Update(r.Context(), id, vendors.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Email:       req.Email,
		Phone:       req.Phone,
		City:        req.City,
		Address:     req.Address,
		Rating:      req.Rating,
		UpdatedBy:   middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, vendors.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor updated", vendor)
}

func (h *VendorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, vendors.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor deleted", nil)
}

type vendorCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type updateVendorCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (h *VendorsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params, err := pagination.Parse(query, vendors.CategorySortableFields)
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	items, total, err := h.Service.ListCategories(r.Context(), query.Get("search"), params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "vendor categories fetched", items, params, total)
}

func (h *VendorsHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	category, err := h.Service.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vendors.ErrCategoryNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor category fetched", category)
}

func (h *VendorsHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req vendorCategoryRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), req.Name, req.Description,
		middleware.UserIDFromContext(r.Context()))
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "vendor category created", category)
}

func (h *VendorsHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateVendorCategoryRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), id, req.Name, req.Description,
		middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, vendors.ErrCategoryNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor category updated", category)
}

func (h *VendorsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.DeleteCategory(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, vendors.ErrCategoryNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor category deleted", nil)
}

type createVendorContactRequest struct {
	VendorID int64  `json:"vendor_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Message  string `json:"message" validate:"max=2000"`
}

func (h *VendorsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	filters, params, err := vendors.ParseContactFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	items, total, err := h.Service.ListContacts(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "vendor contacts fetched", items, params, total)
}

func (h *VendorsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	contact, err := h.Service.GetContactByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, vendors.ErrContactNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor contact fetched", contact)
}

func (h *VendorsHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req createVendorContactRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	contact, err := h.Service.CreateContact(r.Context(), vendors.ContactCreateParams{
		VendorID:  req.VendorID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedBy: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "vendor contact created", contact)
}

func (h *VendorsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.DeleteContact(r.Context(), id); err != nil {
		if errors.Is(err, vendors.ErrContactNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "vendor contact deleted", nil)
}
