package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/planora/server/internal/auth"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *auth.JWTManager {
	t.Helper()
	return auth.NewJWTManager("test-secret", time.Hour, "planora")
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(newTestManager(t), "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/mine", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Header().Get("WWW-Authenticate"), "Bearer")
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	handler := Auth(newTestManager(t), "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/mine", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthInjectsUserID(t *testing.T) {
	manager := newTestManager(t)
	token, err := manager.Generate(42)
	require.NoError(t, err)

	var seen int64
	handler := Auth(manager, "test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/mine", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusNoContent, res.Code)
	require.Equal(t, int64(42), seen)
}

func TestUserIDFromContextDefaultsToZero(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, int64(0), UserIDFromContext(req.Context()))
}
