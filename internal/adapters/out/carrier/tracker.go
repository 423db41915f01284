// Package carrier provides HTTP clients for the carrier tracking APIs.
// One tracker exists per carrier; both speak the same thin JSON protocol
// against different endpoints and leave status translation to the command
// layer, which owns the carrier vocabularies.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// HTTPTracker polls one carrier's tracking endpoint over HTTP.
// It implements ports.CarrierTracker.
type HTTPTracker struct {
	carrier consignment.Carrier
	baseURL string
	client  *http.Client
}

// NewDHLTracker creates a tracker for the DHL shipment tracking API.
func NewDHLTracker(baseURL string) *HTTPTracker {
	return newHTTPTracker(consignment.CarrierDHL, baseURL)
}

// NewDPDTracker creates a tracker for the DPD parcel status API.
func NewDPDTracker(baseURL string) *HTTPTracker {
	return newHTTPTracker(consignment.CarrierDPD, baseURL)
}

func newHTTPTracker(c consignment.Carrier, baseURL string) *HTTPTracker {
	return &HTTPTracker{
		carrier: c,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Carrier identifies which carrier this tracker polls.
func (t *HTTPTracker) Carrier() consignment.Carrier {
	return t.carrier
}

// trackingRecord is one entry of the carrier's tracking response.
type trackingRecord struct {
	TrackingID string `json:"trackingId"`
	StatusCode string `json:"statusCode"`
	StatusText string `json:"statusText"`
}

// Track fetches the current status for the given tracking IDs.
// The carrier omits IDs it has no data for; those are simply absent from the
// result.
func (t *HTTPTracker) Track(ctx context.Context, trackingIDs []string) ([]ports.CarrierStatusEvent, error) {
	if len(trackingIDs) == 0 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/shipments?trackingIds=%s",
		t.baseURL, url.QueryEscape(strings.Join(trackingIDs, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s tracking request failed: %w", t.carrier, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s tracking request failed: status %d", t.carrier, resp.StatusCode)
	}

	var records []trackingRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s tracking response malformed: %w", t.carrier, err)
	}

	events := make([]ports.CarrierStatusEvent, 0, len(records))
	for _, record := range records {
		events = append(events, ports.CarrierStatusEvent{
			TrackingID: record.TrackingID,
			StatusCode: record.StatusCode,
			StatusText: record.StatusText,
		})
	}

	return events, nil
}
