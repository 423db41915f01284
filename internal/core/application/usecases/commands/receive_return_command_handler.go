package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
)

// ReceiveReturnCommandHandler handles return announcements. In one
// transaction it creates the return graph, applies the returned quantities to
// the order and its consignments under the quantity guard, reconciles fully
// returned consignments and re-derives the order status.
type ReceiveReturnCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.MarketplaceNotifier
}

// NewReceiveReturnCommandHandler creates a handler for return announcements.
func NewReceiveReturnCommandHandler(uowFactory FulfillmentUoWFactory,
	notifier ports.MarketplaceNotifier) ReceiveReturnCommandHandler {
	return ReceiveReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the return announcement and returns the RMA assigned to
// it. A guard rejection anywhere in the graph rolls back the whole return.
func (h *ReceiveReturnCommandHandler) Handle(ctx context.Context,
	cmd ReceiveReturnCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetByCode(ctx, cmd.OrderCode())
	if err != nil {
		return "", err
	}

	rma := uuid.NewString()
	ret, err := returns.NewReturn(rma, cmd.MarketplaceReturnCode(), cmd.OrderCode(),
		returns.Customer{Name: cmd.CustomerName(), Email: cmd.CustomerEmail()},
		cmd.InitiationDate())
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	consignmentRepo := uow.ConsignmentRepository()
	touched := make(map[string]*consignment.Consignment)

	for _, line := range cmd.Lines() {
		entry, err := returns.NewEntry(line.OrderEntryNumber, line.Quantity, line.Reason)
		if err != nil {
			return "", err
		}

		for _, allocation := range line.Allocations {
			retCons, err := returns.NewConsignment(allocation.ConsignmentCode, allocation.Quantity)
			if err != nil {
				return "", err
			}
			for _, trackingID := range allocation.TrackingIDs {
				pkg, err := returns.NewPackage(trackingID)
				if err != nil {
					return "", err
				}
				if err = retCons.AddPackage(pkg); err != nil {
					return "", err
				}
			}
			if err = entry.AddConsignment(retCons); err != nil {
				return "", err
			}

			cons, ok := touched[allocation.ConsignmentCode]
			if !ok {
				cons, err = consignmentRepo.GetByCode(ctx, allocation.ConsignmentCode)
				if err != nil {
					return "", err
				}
				touched[allocation.ConsignmentCode] = cons
			}

			// Both counters move together: the consignment line and the order
			// line each absorb the returned quantity under the guard.
			if err = cons.ApplyAdjustment(line.OrderEntryNumber, allocation.Quantity); err != nil {
				return "", err
			}
			if err = aggregate.ApplyReturn(line.OrderEntryNumber, allocation.Quantity, now); err != nil {
				return "", err
			}
		}

		if err = ret.AddEntry(entry); err != nil {
			return "", err
		}
	}

	for _, cons := range touched {
		if _, err = cons.Reconcile(consignment.Returned); err != nil {
			return "", err
		}
		if err = consignmentRepo.Update(ctx, cons); err != nil {
			return "", err
		}
	}

	if err = uow.ReturnRepository().Add(ctx, ret); err != nil {
		return "", err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return "", err
	}

	status, changed, err := rollupOrder(ctx, uow, aggregate, now)
	if err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if changed {
		notifyOrderStatus(ctx, h.notifier, cmd.OrderCode(), status)
	}
	return rma, nil
}
