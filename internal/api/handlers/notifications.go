package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/notifications"
)

// NotificationsHandler serves the caller's own notifications; there is no
// cross-user listing.
type NotificationsHandler struct {
	Service *notifications.Service
	Env     string
}

func NewNotificationsHandler(service *notifications.Service, env string) *NotificationsHandler {
	return &NotificationsHandler{Service: service, Env: env}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	filters, params, err := notifications.ParseFilters(r.URL.Query(), userID)
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "notifications fetched", result.Items, params, result.Total)
}

func (h *NotificationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	notification, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	if notification.UserID != middleware.UserIDFromContext(r.Context()) {
		problem.NotFound(w, r, notifications.ErrNotFound, h.Env)
		return
	}
	writeData(w, http.StatusOK, "notification fetched", notification)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	notification, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	if notification.UserID != userID {
		problem.NotFound(w, r, notifications.ErrNotFound, h.Env)
		return
	}

	updated, err := h.Service.MarkRead(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "notification marked read", updated)
}

func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	notification, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	if notification.UserID != userID {
		problem.NotFound(w, r, notifications.ErrNotFound, h.Env)
		return
	}

	if err := h.Service.SoftDelete(r.Context(), id, userID); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "notification deleted", nil)
}
