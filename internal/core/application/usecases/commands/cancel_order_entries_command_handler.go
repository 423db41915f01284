package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/ports"
)

// CancellationLineResult reports the outcome of one cancellation line.
// Err carries the rejection, most commonly a quantity guard failure, and is
// nil for applied lines.
type CancellationLineResult struct {
	EntryNumber int
	Err         error
}

// CancelOrderEntriesResult reports the per-line outcomes of a batch
// cancellation.
type CancelOrderEntriesResult struct {
	OrderCode string
	Lines     []CancellationLineResult
}

// HasRejections reports whether any line in the batch was rejected.
func (r CancelOrderEntriesResult) HasRejections() bool {
	for _, line := range r.Lines {
		if line.Err != nil {
			return true
		}
	}
	return false
}

// CancelOrderEntriesCommandHandler handles batch line cancellations.
// Each line runs in its own transaction so a guard rejection on one line
// leaves the already-applied lines committed. An applied line also settles
// the consignments shipping it, so a shipment whose lines are all canceled
// reaches Canceled without waiting for a carrier event. After every applied
// line the order status is re-derived from the full fulfillment graph.
//
// Example:
//
//	handler := NewCancelOrderEntriesCommandHandler(uowFactory, notifier)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // the command itself was invalid
//	}
//	if result.HasRejections() {
//	    // Some lines exceeded their remaining quantity
//	}
type CancelOrderEntriesCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.MarketplaceNotifier
}

// NewCancelOrderEntriesCommandHandler creates a handler for batch cancellations.
func NewCancelOrderEntriesCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.MarketplaceNotifier) CancelOrderEntriesCommandHandler {
	return CancelOrderEntriesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the batch cancellation command. The returned error covers
// command validation only; line rejections are reported in the result.
func (h *CancelOrderEntriesCommandHandler) Handle(ctx context.Context,
	cmd CancelOrderEntriesCommand) (CancelOrderEntriesResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderEntriesResult{}, err
	}

	result := CancelOrderEntriesResult{OrderCode: cmd.OrderCode()}
	for _, line := range cmd.Lines() {
		err := h.cancelLine(ctx, cmd.OrderCode(), line)
		result.Lines = append(result.Lines, CancellationLineResult{
			EntryNumber: line.EntryNumber,
			Err:         err,
		})
	}
	return result, nil
}

// cancelLine applies one cancellation line in its own transaction.
func (h *CancelOrderEntriesCommandHandler) cancelLine(ctx context.Context,
	orderCode string, line CancellationLine) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetByCode(ctx, orderCode)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.CancelEntry(line.EntryNumber, line.Quantity,
		line.Reason, line.Notes, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.settleConsignments(ctx, uow, orderCode, line.EntryNumber,
		line.Quantity); err != nil {
		return err
	}

	status, changed, err := rollupOrder(ctx, uow, aggregate, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if changed {
		notifyOrderStatus(ctx, h.notifier, orderCode, status)
	}
	return nil
}

// settleConsignments propagates a canceled order line quantity to the open
// consignments shipping that line. The quantity fills each consignment entry's
// remaining headroom in turn; whatever is left over was never shipped and
// needs no consignment adjustment. A consignment whose lines end up fully
// canceled or returned moves to its terminal Canceled state.
func (h *CancelOrderEntriesCommandHandler) settleConsignments(ctx context.Context,
	uow FulfillmentUoW, orderCode string, entryNumber, quantity int) error {
	consignmentRepo := uow.ConsignmentRepository()

	consignments, err := consignmentRepo.GetAllByOrderCode(ctx, orderCode)
	if err != nil {
		return err
	}

	remaining := quantity
	for _, cons := range consignments {
		if remaining == 0 {
			break
		}
		if cons.Status().IsTerminal() {
			continue
		}

		entry, err := cons.Entry(entryNumber)
		if err != nil {
			// This consignment does not ship the canceled line.
			continue
		}

		headroom := entry.Quantity() - entry.CancelledOrReturnedQuantity()
		if headroom <= 0 {
			continue
		}

		apply := headroom
		if remaining < apply {
			apply = remaining
		}
		if err = cons.ApplyAdjustment(entryNumber, apply); err != nil {
			return err
		}
		remaining -= apply

		if _, err = cons.Reconcile(consignment.Canceled); err != nil {
			return err
		}
		if err = consignmentRepo.Update(ctx, cons); err != nil {
			return err
		}
	}
	return nil
}
