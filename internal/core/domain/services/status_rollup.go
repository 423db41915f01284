package services

import (
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
)

// StatusRollup is a domain service that derives an order's status from the
// consignments and returns attached to it.
//
// Key responsibilities:
//   - Deriving the order status bottom-up after any counter or status change
//   - Keeping the derivation idempotent so it can run after every mutation
//
// Business rules:
//   - A canceled order never leaves Canceled
//   - A terminal order is never downgraded to an open status
//   - Cancellation wins only when nothing was ever delivered or returned
//   - A returned shipment outranks delivery
//
// Example usage:
//
//	rollup := services.NewStatusRollup()
//	status, changed, err := rollup.Rollup(ord, consignments, rets, time.Now())
//	if err != nil {
//	    // Handle derivation failure
//	    return
//	}
//	if changed {
//	    // Persist ord with its new status
//	}
type StatusRollup struct{}

// NewStatusRollup creates a new StatusRollup instance.
func NewStatusRollup() StatusRollup {
	return StatusRollup{}
}

// Rollup derives the order status from the attached consignments and returns
// and applies it to the order.
//
// Parameters:
//   - ord: The order whose status is derived (must be valid)
//   - consignments: Every consignment shipped for the order
//   - rets: Every return announced against the order
//   - now: The moment recorded as the modification time on a status change
//
// Returns:
//   - order.Status: The status the order carries after the rollup
//   - bool: Whether the rollup changed the order
//   - error: Validation errors from the order
func (s StatusRollup) Rollup(ord *order.Order, consignments []*consignment.Consignment,
	rets []*returns.Return, now time.Time) (order.Status, bool, error) {
	if err := ord.Validate(); err != nil {
		return order.Unknown, false, err
	}

	// Canceled is absorbing.
	if ord.Status() == order.Canceled {
		return order.Canceled, false, nil
	}

	derived := s.derive(ord, consignments, rets)
	if derived == order.Unknown {
		return ord.Status(), false, nil
	}

	// Never downgrade a terminal order to an open status.
	if ord.Status().IsTerminal() && !derived.IsTerminal() {
		return ord.Status(), false, nil
	}

	if derived == ord.Status() {
		return derived, false, nil
	}

	if err := ord.ApplyRollup(derived, now); err != nil {
		return order.Unknown, false, err
	}
	return derived, true, nil
}

// derive computes the target status. Unknown means the rollup has nothing to
// say and the order keeps its current status.
func (s StatusRollup) derive(ord *order.Order, consignments []*consignment.Consignment,
	rets []*returns.Return) order.Status {
	if len(consignments) == 0 && len(rets) == 0 {
		if ord.AllEntriesCanceled() {
			return order.Canceled
		}
		return order.Unknown
	}

	anyConsOpen := false
	anyShipped := false
	anyReturned := false
	anyDelivered := false
	allDelivered := len(consignments) > 0
	for _, cons := range consignments {
		switch cons.Status() {
		case consignment.Delivered:
			anyDelivered = true
		case consignment.Returned:
			anyReturned = true
			allDelivered = false
		case consignment.Canceled:
			allDelivered = false
		case consignment.Shipped:
			anyShipped = true
			anyConsOpen = true
			allDelivered = false
		default:
			// Created: announced but not yet with the carrier.
			anyConsOpen = true
			allDelivered = false
		}
	}

	anyRetOpen := false
	for _, ret := range rets {
		if !ret.Status().IsTerminal() {
			anyRetOpen = true
		}
	}

	allSettled := !anyConsOpen && !anyRetOpen

	switch {
	case allSettled && ord.AllEntriesCanceled() && consignment.AllCanceled(consignments):
		return order.Canceled
	case allSettled && anyReturned:
		return order.Returned
	case allSettled && allDelivered:
		return order.Delivered
	case allSettled && anyDelivered:
		// Delivered lines plus canceled remainder still count as delivered.
		return order.Delivered
	case anyShipped:
		return order.Shipped
	default:
		// Only Created consignments or an open return so far; nothing is
		// travelling to the customer yet.
		return order.InProgress
	}
}
