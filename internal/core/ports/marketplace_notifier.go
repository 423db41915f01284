package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// MarketplaceNotifier defines the outbound contract for reporting order status
// changes back to the marketplace. Notification happens after the local
// transaction commits and is fire-and-forget: a failed notification never
// rolls back reconciled state.
type MarketplaceNotifier interface {
	// NotifyOrderStatus reports the order's current status to the marketplace.
	NotifyOrderStatus(ctx context.Context, orderCode string, status order.Status) error
}
