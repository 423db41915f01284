// Package marketplace provides the HTTP client that reports order status
// changes back to the marketplace.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

const defaultTimeout = 10 * time.Second

// HTTPNotifier posts order status updates to the marketplace callback
// endpoint. It implements ports.MarketplaceNotifier. Callers invoke it after
// commit; a failed notification is logged by the caller and never retried
// here.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPNotifier creates a notifier for the given marketplace base URL.
func NewHTTPNotifier(baseURL string) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type statusUpdate struct {
	OrderCode string `json:"orderCode"`
	Status    string `json:"status"`
}

// NotifyOrderStatus reports the order's current status to the marketplace.
func (n *HTTPNotifier) NotifyOrderStatus(ctx context.Context, orderCode string, status order.Status) error {
	payload, err := json.Marshal(statusUpdate{
		OrderCode: orderCode,
		Status:    status.String(),
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/orders/%s/status", n.baseURL, orderCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace notification failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("marketplace notification failed: status %d", resp.StatusCode)
	}

	return nil
}
