package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UpdateCarrierStatusCommandHandler applies one carrier status report to the
// consignment it tracks and re-derives the order status.
type UpdateCarrierStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.MarketplaceNotifier
}

// NewUpdateCarrierStatusCommandHandler creates a handler for carrier status reports.
func NewUpdateCarrierStatusCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.MarketplaceNotifier) UpdateCarrierStatusCommandHandler {
	return UpdateCarrierStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes one carrier status report. A report that matches the
// consignment's current status is a no-op.
func (h *UpdateCarrierStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdateCarrierStatusCommand) error {
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

	consignmentRepo := uow.ConsignmentRepository()

	cons, err := consignmentRepo.GetByTrackingID(ctx, cmd.TrackingID())
	if err != nil {
		return err
	}

	if cons.Carrier() != cmd.Carrier() {
		return errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("tracking ID %s belongs to %s, not %s",
				cmd.TrackingID(), cons.Carrier().String(), cmd.Carrier().String()))
	}

	if cons.Status() == cmd.Status() {
		return uow.Commit(ctx)
	}

	if err = cons.ApplyCarrierStatus(cmd.Status(), cmd.StatusText(), cmd.OccurredAt()); err != nil {
		return err
	}

	if err = consignmentRepo.Update(ctx, cons); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().GetByCode(ctx, cons.OrderCode())
	if err != nil {
		return err
	}

	status, changed, err := rollupOrder(ctx, uow, aggregate, cmd.OccurredAt())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if changed {
		notifyOrderStatus(ctx, h.notifier, aggregate.Code(), status)
	}
	return nil
}
