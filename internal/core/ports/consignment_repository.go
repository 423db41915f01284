package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/consignment"
)

// ConsignmentRepository defines the persistence contract for consignment
// aggregates.
type ConsignmentRepository interface {
	// Add persists a new consignment aggregate to storage.
	// The consignment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *consignment.Consignment) error

	// Update persists changes to an existing consignment aggregate.
	// The consignment must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *consignment.Consignment) error

	// GetByCode retrieves a consignment aggregate by its consignment code.
	GetByCode(ctx context.Context, code string) (*consignment.Consignment, error)

	// GetByTrackingID retrieves a consignment aggregate by the tracking ID the
	// carrier assigned to it. Used when applying carrier status events.
	GetByTrackingID(ctx context.Context, trackingID string) (*consignment.Consignment, error)

	// GetAllByOrderCode retrieves every consignment shipped for one order.
	// Used by the status rollup to see the full shipment picture.
	GetAllByOrderCode(ctx context.Context, orderCode string) ([]*consignment.Consignment, error)

	// GetAllByStatus retrieves every consignment currently in the given status.
	// The carrier tracking jobs poll with status Shipped.
	GetAllByStatus(ctx context.Context, status consignment.Status) ([]*consignment.Consignment, error)
}
