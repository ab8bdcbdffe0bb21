package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/domain/notifications"
	"github.com/stretchr/testify/require"
)

type stubNotificationsRepo struct {
	listFn     func(filters notifications.Filters, params pagination.Params) (notifications.ListResult, error)
	getFn      func(notificationID int64) (*notifications.Notification, error)
	createFn   func(params notifications.CreateParams) (*notifications.Notification, error)
	markReadFn func(notificationID int64) (*notifications.Notification, error)
	deleteFn   func(notificationID int64) error
}

func (s stubNotificationsRepo) List(_ context.Context, filters notifications.Filters, params pagination.Params) (notifications.ListResult, error) {
	return s.listFn(filters, params)
}

func (s stubNotificationsRepo) GetByID(_ context.Context, notificationID int64) (*notifications.Notification, error) {
	return s.getFn(notificationID)
}

func (s stubNotificationsRepo) Create(_ context.Context, params notifications.CreateParams) (*notifications.Notification, error) {
	return s.createFn(params)
}

func (s stubNotificationsRepo) MarkRead(_ context.Context, notificationID int64, _ int64) (*notifications.Notification, error) {
	return s.markReadFn(notificationID)
}

func (s stubNotificationsRepo) SoftDelete(_ context.Context, notificationID int64, _ int64) error {
	return s.deleteFn(notificationID)
}

func TestNotificationsHandlerListScopesToCaller(t *testing.T) {
	var seen notifications.Filters
	repo := stubNotificationsRepo{
		listFn: func(filters notifications.Filters, params pagination.Params) (notifications.ListResult, error) {
			seen = filters
			return notifications.ListResult{}, nil
		},
	}

	h := NewNotificationsHandler(notifications.NewService(repo), "test")
	req := authedRequest(http.MethodGet, "/api/v1/notifications?read=false", "")
	res := httptest.NewRecorder()

	h.List(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, seen.UserID)
	require.Equal(t, int64(42), *seen.UserID)
	require.NotNil(t, seen.Read)
	require.False(t, *seen.Read)
}

func TestNotificationsHandlerGetOtherUsersNotification(t *testing.T) {
	repo := stubNotificationsRepo{
		getFn: func(notificationID int64) (*notifications.Notification, error) {
			return &notifications.Notification{NotificationID: notificationID, UserID: 7}, nil
		},
	}

	h := NewNotificationsHandler(notifications.NewService(repo), "test")
	req := authedRequest(http.MethodGet, "/api/v1/notifications/3", "")
	req.SetPathValue("id", "3")
	res := httptest.NewRecorder()

	h.Get(res, req)

	// Someone else's notification is indistinguishable from a missing one.
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestNotificationsHandlerMarkRead(t *testing.T) {
	repo := stubNotificationsRepo{
		getFn: func(notificationID int64) (*notifications.Notification, error) {
			return &notifications.Notification{NotificationID: notificationID, UserID: 42}, nil
		},
		markReadFn: func(notificationID int64) (*notifications.Notification, error) {
			return &notifications.Notification{NotificationID: notificationID, UserID: 42, Read: true}, nil
		},
	}

	h := NewNotificationsHandler(notifications.NewService(repo), "test")
	req := authedRequest(http.MethodPatch, "/api/v1/notifications/3/read", "")
	req.SetPathValue("id", "3")
	res := httptest.NewRecorder()

	h.MarkRead(res, req)

	require.Equal(t, http.StatusOK, res.Code)
}

func TestNotificationsHandlerDeleteNotFound(t *testing.T) {
	repo := stubNotificationsRepo{
		getFn: func(notificationID int64) (*notifications.Notification, error) {
			return nil, notifications.ErrNotFound
		},
	}

	h := NewNotificationsHandler(notifications.NewService(repo), "test")
	req := authedRequest(http.MethodDelete, "/api/v1/notifications/3", "")
	req.SetPathValue("id", "3")
	res := httptest.NewRecorder()

	h.Delete(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}
