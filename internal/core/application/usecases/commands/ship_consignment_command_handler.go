package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/ports"
)

// ShipConsignmentCommandHandler handles shipment announcements. Creates the
// consignment in Shipped status, verifies every line refers to an existing
// order entry, and re-derives the order status.
type ShipConsignmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.MarketplaceNotifier
}

// NewShipConsignmentCommandHandler creates a handler for shipment announcements.
func NewShipConsignmentCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.MarketplaceNotifier) ShipConsignmentCommandHandler {
	return ShipConsignmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the shipment announcement command.
func (h *ShipConsignmentCommandHandler) Handle(ctx context.Context, cmd ShipConsignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByCode(ctx, cmd.OrderCode())
	if err != nil {
		return err
	}

	cons, err := consignment.NewConsignment(
		cmd.ConsignmentCode(),
		cmd.OrderCode(),
		cmd.Carrier(),
		cmd.TrackingID(),
		cmd.ShippingAddress(),
		cmd.ShippingDate(),
		cmd.ExpectedDelivery(),
	)
	if err != nil {
		return err
	}

	for _, line := range cmd.Lines() {
		// Every consignment line must refer to an entry of the order.
		if _, err = aggregate.Entry(line.OrderEntryNumber); err != nil {
			return err
		}
		if err = cons.AddEntry(line.OrderEntryNumber, line.Quantity); err != nil {
			return err
		}
	}

	if err = uow.ConsignmentRepository().Add(ctx, cons); err != nil {
		return err
	}

	status, changed, err := rollupOrder(ctx, uow, aggregate, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if changed {
		notifyOrderStatus(ctx, h.notifier, cmd.OrderCode(), status)
	}
	return nil
}
