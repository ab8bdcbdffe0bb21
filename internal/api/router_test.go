package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/domain/catering"
	"github.com/planora/server/internal/domain/coupons"
	"github.com/planora/server/internal/domain/decorations"
	"github.com/planora/server/internal/domain/escrow"
	"github.com/planora/server/internal/domain/events"
	"github.com/planora/server/internal/domain/guests"
	"github.com/planora/server/internal/domain/messages"
	"github.com/planora/server/internal/domain/notifications"
	"github.com/planora/server/internal/domain/tickets"
	"github.com/planora/server/internal/domain/vendors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubStorage satisfies the aggregate repository with nil domain repos. The
// routing tests below never reach a handler that touches the store.
type stubStorage struct{}

func (stubStorage) Events() events.Repository               { return nil }
func (stubStorage) Guests() guests.Repository               { return nil }
func (stubStorage) Vendors() vendors.Repository             { return nil }
func (stubStorage) Catering() catering.Repository           { return nil }
func (stubStorage) Decorations() decorations.Repository     { return nil }
func (stubStorage) Tickets() tickets.Repository             { return nil }
func (stubStorage) Coupons() coupons.Repository             { return nil }
func (stubStorage) Messages() messages.Repository           { return nil }
func (stubStorage) Notifications() notifications.Repository { return nil }
func (stubStorage) Escrow() escrow.Repository               { return nil }
func (stubStorage) Ping(_ context.Context) error            { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			JWTExpiry: time.Hour,
			Issuer:    "planora",
		},
		Environment: "test",
	}
	return NewRouter(cfg, zerolog.Nop(), Dependencies{Repo: stubStorage{}})
}

func TestRouterWritesRequireAuth(t *testing.T) {
	router := testRouter(t)

	for _, target := range []string{
		"/api/v1/events",
		"/api/v1/guests",
		"/api/v1/coupons",
		"/api/v1/uploads/presign",
		"/api/v1/escrow/transactions",
	} {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`))
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code, "POST %s without token", target)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/events", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
	require.Equal(t, "GET, POST", res.Header().Get("Allow"))
}

func TestRouterMineRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/mine", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRouterHealthAndVersion(t *testing.T) {
	router := testRouter(t)

	for _, target := range []string{"/healthz", "/readyz", "/health", "/version"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusOK, res.Code, "GET %s", target)
	}
}

func TestRouterLocalEscrowTransactionRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/escrow/transactions/local/5", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRouterNotificationsListRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}
