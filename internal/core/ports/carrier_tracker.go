package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/consignment"
)

// CarrierStatusEvent is one status report for a tracked consignment, in the
// carrier's own vocabulary. Translation onto the internal status model happens
// in the command layer, so unknown codes are rejected in exactly one place.
type CarrierStatusEvent struct {
	TrackingID string
	StatusCode string
	StatusText string
}

// CarrierTracker defines the outbound contract for polling a carrier's
// tracking API. One implementation exists per carrier.
type CarrierTracker interface {
	// Carrier identifies which carrier this tracker polls.
	Carrier() consignment.Carrier

	// Track fetches the current status for the given tracking IDs.
	// Tracking IDs the carrier has no data for are absent from the result,
	// not an error.
	Track(ctx context.Context, trackingIDs []string) ([]CarrierStatusEvent, error)
}
