package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/domain/events"
)

// Notifier records an in-app notification as a non-critical side effect.
type Notifier interface {
	Notify(ctx context.Context, userID int64, title, body string)
}

type EventsHandler struct {
	Service  *events.Service
	Notifier Notifier
	Env      string
}

func NewEventsHandler(service *events.Service, notifier Notifier, env string) *EventsHandler {
	return &EventsHandler{Service: service, Notifier: notifier, Env: env}
}

type createEventRequest struct {
	Name          string     `json:"name" validate:"required,max=200"`
	Description   string     `json:"description" validate:"max=5000"`
	Venue         string     `json:"venue" validate:"max=300"`
	City          string     `json:"city" validate:"max=120"`
	EventTypeID   *int64     `json:"event_type_id" validate:"omitempty,gt=0"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	GuestCapacity *int       `json:"guest_capacity" validate:"omitempty,gt=0"`
	Budget        *float64   `json:"budget" validate:"omitempty,gte=0"`
	CoverImageURL string     `json:"cover_image_url" validate:"omitempty,url"`
}

type updateEventRequest struct {
	Name          *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string    `json:"description" validate:"omitempty,max=5000"`
	Venue         *string    `json:"venue" validate:"omitempty,max=300"`
	City          *string    `json:"city" validate:"omitempty,max=120"`
	EventTypeID   *int64     `json:"event_type_id" validate:"omitempty,gt=0"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	GuestCapacity *int       `json:"guest_capacity" validate:"omitempty,gt=0"`
	Budget        *float64   `json:"budget" validate:"omitempty,gte=0"`
	CoverImageURL *string    `json:"cover_image_url" validate:"omitempty,url"`
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, params, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "events fetched", result.Items, params, result.Total)
}

// ListMine scopes the listing to records created by the caller.
func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	filters, params, err := events.ParseFilters(r.URL.Query())
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
	writeList(w, "events fetched", result.Items, params, result.Total)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	event, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event fetched", event)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	event, err := h.Service.Create(r.Context(), events.CreateParams{
		Name:          req.Name,
		Description:   req.Description,
		Venue:         req.Venue,
		City:          req.City,
		EventTypeID:   req.EventTypeID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		GuestCapacity: req.GuestCapacity,
		Budget:        req.Budget,
		CoverImageURL: req.CoverImageURL,
		CreatedBy:     userID,
	})
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}

	if h.Notifier != nil {
		h.Notifier.Notify(r.Context(), userID, "Event created", event.Name)
	}
	writeData(w, http.StatusCreated, "event created", event)
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateEventRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	event, err := h.Service.Update(r.Context(), id, events.UpdateParams{
		Name:          req.Name,
		Description:   req.Description,
		Venue:         req.Venue,
		City:          req.City,
		EventTypeID:   req.EventTypeID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		GuestCapacity: req.GuestCapacity,
		Budget:        req.Budget,
		CoverImageURL: req.CoverImageURL,
		UpdatedBy:     middleware.UserIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event updated", event)
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event deleted", nil)
}

type eventTypeRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type updateEventTypeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (h *EventsHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params, err := pagination.Parse(query, events.TypeSortableFields)
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	items, total, err := h.Service.ListTypes(r.Context(), query.Get("search"), params)
	if err != nil {
		listError(w, r, err, h.Env)
		return
	}
	writeList(w, "event types fetched", items, params, total)
}

func (h *EventsHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	eventType, err := h.Service.GetTypeByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, events.ErrTypeNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event type fetched", eventType)
}

func (h *EventsHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req eventTypeRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	eventType, err := h.Service.CreateType(r.Context(), req.Name, req.Description,
		middleware.UserIDFromContext(r.Context()))
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusCreated, "event type created", eventType)
}

func (h *EventsHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	var req updateEventTypeRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	eventType, err := h.Service.UpdateType(r.Context(), id, req.Name, req.Description,
		middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, events.ErrTypeNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event type updated", eventType)
}

func (h *EventsHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.Env)
	if !ok {
		return
	}

	err := h.Service.DeleteType(r.Context(), id, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, events.ErrTypeNotFound) {
			problem.NotFound(w, r, err, h.Env)
			return
		}
		problem.ServerError(w, r, err, h.Env)
		return
	}
	writeData(w, http.StatusOK, "event type deleted", nil)
}
