package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/coupons"
	"github.com/stretchr/testify/require"
)

type stubCouponsRepo struct {
	listFn   func(filters coupons.Filters, params pagination.Params) (coupons.ListResult, error)
	getFn    func(couponCodeID int64) (*coupons.Coupon, error)
	createFn func(params coupons.CreateParams) (*coupons.Coupon, error)
	updateFn func(couponCodeID int64, params coupons.UpdateParams) (*coupons.Coupon, error)
	deleteFn func(couponCodeID int64) error
}

func (s stubCouponsRepo) List(_ context.Context, filters coupons.Filters, params pagination.Params) (coupons.ListResult, error) {
	return s.listFn(filters, params)
}

func (s stubCouponsRepo) GetByID(_ context.Context, couponCodeID int64) (*coupons.Coupon, error) {
	return s.getFn(couponCodeID)
}

func (s stubCouponsRepo) Create(_ context.Context, params coupons.CreateParams) (*coupons.Coupon, error) {
	return s.createFn(params)
}

func (s stubCouponsRepo) Update(_ context.Context, couponCodeID int64, params coupons.UpdateParams) (*coupons.Coupon, error) {
	return s.updateFn(couponCodeID, params)
}

func (s stubCouponsRepo) SoftDelete(_ context.Context, couponCodeID int64, _ int64) error {
	return s.deleteFn(couponCodeID)
}

func TestCouponsHandlerCreateSuccess(t *testing.T) {
	repo := stubCouponsRepo{
		createFn: func(params coupons.CreateParams) (*coupons.Coupon, error) {
			require.Equal(t, "SUMMER20", params.Code)
			return &coupons.Coupon{CouponCodeID: 1, Code: params.Code, Name: params.Name}, nil
		},
	}

	h := NewCouponsHandler(coupons.NewService(repo), "test")
	req := authedRequest(http.MethodPost, "/api/v1/coupons",
		`{"code":"SUMMER20","name":"Summer sale","price":20}`)
	res := httptest.NewRecorder()

	h.Create(res, req)

	require.Equal(t, http.StatusCreated, res.Code)
}

func TestCouponsHandlerCreateDuplicateCode(t *testing.T) {
	repo := stubCouponsRepo{
		createFn: func(params coupons.CreateParams) (*coupons.Coupon, error) {
			return nil, coupons.ErrCodeTaken
		},
	}

	h := NewCouponsHandler(coupons.NewService(repo), "test")
	req := authedRequest(http.MethodPost, "/api/v1/coupons",
		`{"code":"SUMMER20","name":"Summer sale","price":20}`)
	res := httptest.NewRecorder()

	h.Create(res, req)

	require.Equal(t, http.StatusConflict, res.Code)
	require.Contains(t, res.Header().Get("Content-Type"), "application/problem+json")
}

func TestCouponsHandlerCreateRejectsShortCode(t *testing.T) {
	h := NewCouponsHandler(coupons.NewService(stubCouponsRepo{}), "test")
	req := authedRequest(http.MethodPost, "/api/v1/coupons",
		`{"code":"AB","name":"Too short","price":5}`)
	res := httptest.NewRecorder()

	h.Create(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}
