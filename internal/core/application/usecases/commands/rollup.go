package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// rollupOrder loads the full fulfillment graph of an order inside the current
// transaction, derives the order status and persists the order if it changed.
// It reports the derived status and whether it changed.
func rollupOrder(ctx context.Context, uow FulfillmentUoW, ord *order.Order,
	now time.Time) (order.Status, bool, error) {
	consignments, err := uow.ConsignmentRepository().GetAllByOrderCode(ctx, ord.Code())
	if err != nil {
		return order.Unknown, false, err
	}

	rets, err := uow.ReturnRepository().GetAllByOrderCode(ctx, ord.Code())
	if err != nil {
		return order.Unknown, false, err
	}

	rollup := services.NewStatusRollup()
	status, changed, err := rollup.Rollup(ord, consignments, rets, now)
	if err != nil {
		return order.Unknown, false, err
	}

	if changed {
		if err := uow.OrderRepository().Update(ctx, ord); err != nil {
			return order.Unknown, false, err
		}
	}
	return status, changed, nil
}

// notifyOrderStatus reports a status change to the marketplace after the local
// transaction committed. Failures are logged, never propagated: the
// reconciled state stays committed regardless of what the marketplace says.
func notifyOrderStatus(ctx context.Context, notifier ports.MarketplaceNotifier,
	orderCode string, status order.Status) {
	if notifier == nil {
		return
	}
	if err := notifier.NotifyOrderStatus(ctx, orderCode, status); err != nil {
		slog.Warn("marketplace status notification failed",
			"orderCode", orderCode,
			"status", status.String(),
			"error", err)
	}
}
