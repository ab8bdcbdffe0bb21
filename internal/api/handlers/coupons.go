package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/coupons"
)

type CouponsHandler struct {
	Service *coupons.Service
	Env     string
}

func NewCouponsHandler(service *coupons.Service, env string) *CouponsHandler {
	return &CouponsHandler{Service: service, Env: env}
}

type createCouponRequest struct {
	Code              string     `json:"code" validate:"required,min=3,max=40"`
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description" validate:"max=1000"`
	Price             float64    `json:"price" validate:"required,gt=0"`
	MinOrderAmount    float64    `json:"min_order_amount" validate:"gte=0"`
	MaxDiscountAmount float64    `json:"max_discount_amount" validate:"gte=0"`
	UsageLimit        int        `json:"usage_limit" validate:"gte=0"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
}

type updateCouponRequest struct {
	Name              *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string    `json:"description" validate:"omitempty,max=1000"`
	Price             *float64   `json:"price" validate:"omitempty,gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" validate:"omitempty,gte=0"`
	UsageLimit        *int       `json:"usage_limit" validate:"omitempty,gte=0"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
}

func (h *CouponsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := coupons.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "coupons fetched", result.Items, params, result.Total)
}

func (h *CouponsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := coupons.ParseFilters(r.URL.Query())
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
	writeList(w, "coupons fetched", result.Items, params, result.Total)
}

func (h *CouponsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	coupon, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, coupons.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "coupon fetched", coupon)
}

func (h *CouponsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	coupon, err := h.Service.Create(r.Context(), coupons.CreateParams{
		Code:              req.Code,
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		CreatedBy:         middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, coupons.ErrCodeTaken) {
			problem.Write(w, r, http.StatusConflict, problem.TypeValidation, "Invalid request", err, h.Env,
				problem.WithDetail("coupon code already exists"))
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "coupon created", coupon)
}

func (h *CouponsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateCouponRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	coupon, err := h.Service.Update(r.Context(), id, coupons.UpdateParams{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		UpdatedBy:         middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, coupons.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "coupon updated", coupon)
}

func (h *CouponsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, coupons.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "coupon deleted", nil)
}
