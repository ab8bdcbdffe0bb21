package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/metrics"
)

// Gateway error taxonomy. Handlers map these onto problem responses.
var (
	ErrGatewayAuth        = errors.New("invalid gateway credentials")
	ErrGatewayForbidden   = errors.New("gateway access denied")
	ErrGatewayNotFound    = errors.New("gateway resource not found")
	ErrGatewayRejected    = errors.New("gateway rejected request")
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// Customer is the gateway's customer record, passed through verbatim.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GatewayTransaction is the gateway's view of a transaction.
type GatewayTransaction struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id,omitempty"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
	Status     string  `json:"status"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
}

type CreateTransactionRequest struct {
	CustomerID string  `json:"customer_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"omitempty,len=3"`
	EventID    *int64  `json:"event_id" validate:"omitempty,gt=0"`
}

type UpdateTransactionRequest struct {
	Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
	Status *string  `json:"status" validate:"omitempty,max=50"`
}

// MapStatus folds a gateway status into the local vocabulary. Comparison is
// case-insensitive; unrecognised states fall back to pending.
func MapStatus(gatewayStatus string) string {
	switch strings.ToLower(gatewayStatus) {
	case "funded", "completed":
		return StatusCompleted
	case "cancelled":
		return StatusCancelled
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}

// Client is a thin HTTP client for the escrow payment gateway. Requests run
// through a circuit breaker so a failing gateway sheds load quickly instead
// of tying up request handlers.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg config.EscrowConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "escrow-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		http:      &http.Client{Timeout: cfg.Timeout},
		breaker:   breaker,
	}
}

func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	body, err := c.do(ctx, http.MethodPost, "/customers", req)
	if err != nil {
		metrics.EscrowGatewayRequests.WithLabelValues("create_customer", "error").Inc()
		return nil, err
	}
	metrics.EscrowGatewayRequests.WithLabelValues("create_customer", "ok").Inc()

	var customer Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, fmt.Errorf("decode gateway customer: %w", err)
	}
	return &customer, nil
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	body, err := c.do(ctx, http.MethodGet, "/customers/"+customerID, nil)
	if err != nil {
		metrics.EscrowGatewayRequests.WithLabelValues("get_customer", "error").Inc()
		return nil, err
	}
	metrics.EscrowGatewayRequests.WithLabelValues("get_customer", "ok").Inc()

	var customer Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, fmt.Errorf("decode gateway customer: %w", err)
	}
	return &customer, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*GatewayTransaction, error) {
	payload := struct {
		CustomerID string  `json:"customer_id"`
		Amount     float64 `json:"amount"`
		Currency   string  `json:"currency,omitempty"`
	}{req.CustomerID, req.Amount, req.Currency}

	body, err := c.do(ctx, http.MethodPost, "/transactions", payload)
	if err != nil {
		metrics.EscrowGatewayRequests.WithLabelValues("create_transaction", "error").Inc()
		return nil, err
	}
	metrics.EscrowGatewayRequests.WithLabelValues("create_transaction", "ok").Inc()

	return decodeTransaction(body)
}

func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*GatewayTransaction, error) {
	body, err := c.do(ctx, http.MethodGet, "/transactions/"+transactionID, nil)
	if err != nil {
		metrics.EscrowGatewayRequests.WithLabelValues("get_transaction", "error").Inc()
		return nil, err
	}
	metrics.EscrowGatewayRequests.WithLabelValues("get_transaction", "ok").Inc()

	return decodeTransaction(body)
}

func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, req UpdateTransactionRequest) (*GatewayTransaction, error) {
	body, err := c.do(ctx, http.MethodPatch, "/transactions/"+transactionID, req)
	if err != nil {
		metrics.EscrowGatewayRequests.WithLabelValues("update_transaction", "error").Inc()
		return nil, err
	}
	metrics.EscrowGatewayRequests.WithLabelValues("update_transaction", "ok").Inc()

	return decodeTransaction(body)
}

func decodeTransaction(body []byte) (*GatewayTransaction, error) {
	var tx GatewayTransaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("decode gateway transaction: %w", err)
	}
	return &tx, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			encoded, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("encode gateway request: %w", err)
			}
			reqBody = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("build gateway request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.SetBasicAuth(c.apiKey, c.apiSecret)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("read gateway response: %w", err)
		}

		if err := statusError(resp.StatusCode); err != nil {
			zerolog.Ctx(ctx).Warn().
				Int("status", resp.StatusCode).
				Str("method", method).
				Str("path", path).
				Msg("escrow gateway error")
			return nil, err
		}
		return body, nil
	})
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrGatewayAuth
	case code == http.StatusForbidden:
		return ErrGatewayForbidden
	case code == http.StatusNotFound:
		return ErrGatewayNotFound
	case code == http.StatusUnprocessableEntity:
		return ErrGatewayRejected
	default:
		return fmt.Errorf("%w: status %d", ErrGatewayUnavailable, code)
	}
}
