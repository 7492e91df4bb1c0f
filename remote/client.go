package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pos-sync-service/apperrors"
	"pos-sync-service/models"

	"go.uber.org/zap"
)

// Client talks to the backoffice order API. Every call is bounded by the
// transport timeout; a timeout is treated as any other remote failure and
// left to the sync manager's retry policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SyncBatch is the bulk reconciliation payload. The remote acknowledges the
// whole batch or none of it; there is no partial acknowledgement.
type SyncBatch struct {
	Orders []models.Order     `json:"orders"`
	Items  []models.OrderItem `json:"items"`
}

// OrderAck is the echo returned for a single submitted order.
type OrderAck struct {
	OrderID  string `json:"order_id"`
	ServerID string `json:"server_id"`
}

// SubmitOrder pushes one locally-created order.
func (c *Client) SubmitOrder(ctx context.Context, order models.Order) (*OrderAck, error) {
	var ack OrderAck
	if err := c.do(ctx, http.MethodPost, "/orders", order, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// SubmitExtraItems pushes a replaced item set for an order.
func (c *Client) SubmitExtraItems(ctx context.Context, orderID string, items []models.OrderItem) error {
	payload := map[string]any{"items": items}
	return c.do(ctx, http.MethodPut, "/orders/extra/"+orderID, payload, nil)
}

// SubmitStatus pushes a status change for an order.
func (c *Client) SubmitStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	payload := map[string]any{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/status/"+orderID, payload, nil)
}

// SubmitCancel pushes a cancellation with its reason code.
func (c *Client) SubmitCancel(ctx context.Context, orderID, reasonCode string) error {
	return c.do(ctx, http.MethodPut, "/orders/cancel/"+orderID+"/"+reasonCode, nil, nil)
}

// SyncOrders pushes the sync manager's batch.
func (c *Client) SyncOrders(ctx context.Context, batch SyncBatch) error {
	return c.do(ctx, http.MethodPost, "/orders/sync", batch, nil)
}

// FetchVendorOrders pulls server-originated orders for merging into screens.
func (c *Client) FetchVendorOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/vendor/"+vendorID, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.RemoteSync("failed to encode request for "+path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.RemoteSync("failed to build request for "+path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.RemoteSync("request to "+path+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("remote rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apperrors.RemoteSync(
			fmt.Sprintf("remote returned %d for %s", resp.StatusCode, path), nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.RemoteSync("failed to decode response from "+path, err)
		}
	}
	return nil
}
