// Package ports defines the contracts between the core and infrastructure.
// These interfaces establish repository, unit of work and outbound gateway
// boundaries, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders with their
// complete entry lists and cumulative counters.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByCode retrieves an order aggregate by its marketplace order code.
	// Returns the complete order with all entries and their counters.
	GetByCode(ctx context.Context, code string) (*order.Order, error)
}
