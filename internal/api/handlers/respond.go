// Package handlers implements the HTTP surface of the Planora API. Every
// entity gets the same shape: list with the shared pagination envelope,
// get/create/update/delete with a {message, data} envelope, and problem+json
// errors.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/planora/server/internal/api/pagination"
	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/validation"
)

type response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type listResponse struct {
	Message    string          `json:"message"`
	Data       any             `json:"data"`
	Pagination pagination.Page `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, response{Message: message, Data: data})
}

func writeList(w http.ResponseWriter, message string, data any, params pagination.Params, total int) {
	writeJSON(w, http.StatusOK, listResponse{
		Message:    message,
		Data:       data,
		Pagination: pagination.BuildPage(params, total),
	})
}

// decodeJSON decodes a request body strictly: unknown fields and trailing
// garbage are rejected so typos fail loudly instead of silently dropping
// input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// decodeAndValidate decodes the body and runs struct validation, writing the
// problem response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, env string) bool {
	if err := decodeJSON(r, dst); err != nil {
		problem.Validation(w, r, err, env)
		return false
	}
	fields, err := validation.Struct(dst)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidBody) {
			problem.Validation(w, r, err, env, problem.WithFieldErrors(fields))
			return false
		}
		problem.ServerError(w, r, err, env)
		return false
	}
	return true
}

// listError distinguishes bad query parameters from store failures.
func listError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var paramErr pagination.ParamError
	if errors.As(err, &paramErr) {
		problem.Validation(w, r, err, env)
		return
	}
	problem.ServerError(w, r, err, env)
}
