package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// OrderClient defines the order operations against the backend.
type OrderClient interface {
	// Place submits an order. The idempotency key lets the backend
	// de-duplicate a retried submission.
	Place(ctx context.Context, req *model.OrderRequest, idempotencyKey string) (*model.OrderConfirmation, error)

	// ListOrders retrieves the order history with nested line items.
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// httpOrderClient implements OrderClient over the backend's REST API.
type httpOrderClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPOrderClient creates an order client for the backend at baseURL.
func NewHTTPOrderClient(baseURL string, timeout time.Duration, logger zerolog.Logger) OrderClient {
	return &httpOrderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "order-client").Logger(),
	}
}

// Place submits an order to POST /api/orders/place.
func (c *httpOrderClient) Place(ctx context.Context, req *model.OrderRequest, idempotencyKey string) (*model.OrderConfirmation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/orders/place", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msg("order placement request failed")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		c.logger.Warn().Err(err).Msg("order placement rejected by backend")
		return nil, err
	}

	var confirmation model.OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("failed to decode order confirmation: %w", err)
	}

	c.logger.Info().Str("order_id", confirmation.OrderID).Msg("order placed")
	return &confirmation, nil
}

// ListOrders retrieves the order history from GET /api/orders.
func (c *httpOrderClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order history request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("order history request failed")
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var orders []model.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("failed to decode order history: %w", err)
	}

	c.logger.Debug().Int("count", len(orders)).Msg("retrieved order history")
	return orders, nil
}

// checkStatus converts a non-2xx response into an *model.APIError.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	return &model.APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
