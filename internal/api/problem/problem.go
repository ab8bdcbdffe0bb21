// Package problem writes RFC 7807 application/problem+json responses.
//
// Every error leaving the API goes through this package so the taxonomy stays
// uniform: validation (400), not-found (404), upstream gateway failures
// (status mapped from the gateway), and unclassified server errors (500).
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

const contentType = "application/problem+json"

const (
	TypeValidation = "https://planora.dev/problems/validation-error"
	TypeNotFound   = "https://planora.dev/problems/not-found"
	TypeUpstream   = "https://planora.dev/problems/upstream-error"
	TypeServer     = "https://planora.dev/problems/server-error"
)

type Details struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   map[string]any `json:"errors,omitempty"`
}

type Option func(*Details)

func WithDetail(detail string) Option {
	return func(p *Details) { p.Detail = detail }
}

func WithFieldErrors(errs map[string]any) Option {
	return func(p *Details) { p.Errors = errs }
}

// Validation writes a 400 with per-field messages when err carries them.
func Validation(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusBadRequest, TypeValidation, "Invalid request", err, env, opts...)
}

// NotFound writes a 404. Soft-deleted records are reported identically to
// records that never existed.
func NotFound(w http.ResponseWriter, r *http.Request, err error, env string) {
	Write(w, r, http.StatusNotFound, TypeNotFound, "Not found", err, env)
}

// Upstream writes a gateway failure with the status already mapped by the
// escrow client.
func Upstream(w http.ResponseWriter, r *http.Request, status int, err error, env string, opts ...Option) {
	Write(w, r, status, TypeUpstream, "Gateway error", err, env, opts...)
}

// ServerError writes a 500 for unclassified failures.
func ServerError(w http.ResponseWriter, r *http.Request, err error, env string) {
	Write(w, r, http.StatusInternalServerError, TypeServer, "Server error", err, env)
}

func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	details := Details{
		Type:   typ,
		Title:  title,
		Status: status,
	}

	for _, opt := range opts {
		opt(&details)
	}

	// Raw error text is only exposed outside production.
	if details.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			details.Detail = err.Error()
		} else {
			details.Detail = http.StatusText(status)
		}
	}

	if details.Instance == "" && r != nil {
		details.Instance = r.URL.Path
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("type", typ).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(title)
	}

	WriteDetails(w, details)
}

func WriteDetails(w http.ResponseWriter, details Details) {
	payload, err := json.Marshal(details)
	if err != nil {
		fallback := fmt.Sprintf("{\"type\":\"about:blank\",\"title\":\"%s\",\"status\":500}", http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(details.Status)
	_, _ = w.Write(payload)
}
