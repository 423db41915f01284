package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for return aggregates.
// A return is stored with its full graph: entries, return consignments and
// tracked packages.
type ReturnRepository interface {
	// Add persists a new return aggregate to storage.
	// The return must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *returns.Return) error

	// Update persists changes to an existing return aggregate.
	// The return must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *returns.Return) error

	// GetByRma retrieves a return aggregate by its return merchandise
	// authorization.
	GetByRma(ctx context.Context, rma string) (*returns.Return, error)

	// GetAllByOrderCode retrieves every return announced against one order.
	// Used by the status rollup to see the full return picture.
	GetAllByOrderCode(ctx context.Context, orderCode string) ([]*returns.Return, error)

	// GetByConsignmentCode retrieves the return that contains a return
	// consignment with the given code.
	GetByConsignmentCode(ctx context.Context, consignmentCode string) (*returns.Return, error)
}
