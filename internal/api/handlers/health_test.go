package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(_ context.Context) error {
	return s.err
}

func TestHealthHandlerLiveness(t *testing.T) {
	h := NewHealthHandler(stubPinger{}, "dev")
	res := httptest.NewRecorder()

	h.Liveness(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, res.Code)
}

func TestHealthHandlerReadinessDatabaseDown(t *testing.T) {
	h := NewHealthHandler(stubPinger{err: errors.New("connection refused")}, "dev")
	res := httptest.NewRecorder()

	h.Readiness(res, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestHealthHandlerComposite(t *testing.T) {
	h := NewHealthHandler(stubPinger{}, "dev")
	res := httptest.NewRecorder()

	h.Health(res, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, res.Code)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Equal(t, "ok", payload["status"])
	components, ok := payload["components"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ok", components["database"])
}
