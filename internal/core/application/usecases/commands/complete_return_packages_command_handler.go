package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// CompleteReturnPackagesCommandHandler applies a carrier package status to
// every parcel of a return, reconciles the return graph bottom-up, stamps
// completion dates and re-derives the order status.
type CompleteReturnPackagesCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.MarketplaceNotifier
}

// NewCompleteReturnPackagesCommandHandler creates a handler for return
// package completion reports.
func NewCompleteReturnPackagesCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.MarketplaceNotifier) CompleteReturnPackagesCommandHandler {
	return CompleteReturnPackagesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion report. Re-running it for an already
// settled return commits without further changes.
func (h *CompleteReturnPackagesCommandHandler) Handle(ctx context.Context,
	cmd CompleteReturnPackagesCommand) error {
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

	returnRepo := uow.ReturnRepository()

	ret, err := returnRepo.GetByRma(ctx, cmd.Rma())
	if err != nil {
		return err
	}

	if err = ret.SetAllPackageStatuses(cmd.PackageStatus(), cmd.OccurredAt()); err != nil {
		return err
	}

	reconciled, err := ret.Reconcile()
	if err != nil {
		return err
	}

	if err = ret.StampCompletedDates(cmd.OccurredAt()); err != nil {
		return err
	}

	if err = returnRepo.Update(ctx, ret); err != nil {
		return err
	}

	if !reconciled {
		return uow.Commit(ctx)
	}

	aggregate, err := uow.OrderRepository().GetByCode(ctx, ret.OrderCode())
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
