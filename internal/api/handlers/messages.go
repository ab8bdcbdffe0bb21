package handlers

import (
	"errors"
	"net/http"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/messages"
)

type MessagesHandler struct {
	Service *messages.Service
	Env     string
}

func NewMessagesHandler(service *messages.Service, env string) *MessagesHandler {
	return &MessagesHandler{Service: service, Env: env}
}

type createMessageRequest struct {
	EventID int64  `json:"event_id" validate:"required,gt=0"`
	Body    string `json:"body" validate:"required,max=5000"`
}

func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := messages.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "messages fetched", result.Items, params, result.Total)
}

func (h *MessagesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := messages.ParseFilters(r.URL.Query())
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
	writeList(w, "messages fetched", result.Items, params, result.Total)
}

func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	message, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, messages.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "message fetched", message)
}

func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	message, err := h.Service.Create(r.Context(), messages.CreateParams{
		EventID:   req.EventID,
		Body:      req.Body,
		CreatedBy: middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "message created", message)
}

func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, messages.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "message deleted", nil)
}
