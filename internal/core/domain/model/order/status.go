package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine whose transitions after marketplace acknowledgement
// are driven exclusively by the status rollup over the order's consignments and
// returns; no other code path mutates an order's status.
//
// State transitions:
//
//	Created ──> InProgress ──> Shipped ──┬──> Delivered
//	                 │                   ├──> Returned
//	                 │                   └──> Canceled
//	                 └──> Canceled
//
// Created -> InProgress is the marketplace-acknowledgement transition. Everything
// downstream of InProgress is derived by the rollup coordinator from consignment
// and return states. Delivered, Returned, and Canceled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first ingested from the
	// marketplace. Orders stay here until the marketplace acknowledges them.
	Created

	// InProgress indicates the marketplace has acknowledged the order and
	// fulfillment may begin.
	InProgress

	// Shipped indicates at least one consignment is on its way to the customer,
	// or a return is currently travelling back.
	Shipped

	// Delivered indicates every consignment reached the customer and every
	// return (if any) completed. Terminal.
	Delivered

	// Returned indicates all shipped goods travelled back to the warehouse. Terminal.
	Returned

	// Canceled indicates every line was canceled before or instead of delivery. Terminal.
	Canceled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		InProgress: "InProgress",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Returned:   "Returned",
		Canceled:   "Canceled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		InProgress: "InProgress",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Returned:   "Returned",
		Canceled:   "Canceled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further reconciliation event can change an
// order in this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Canceled
}

// Confirm transitions the status to InProgress.
//
// Valid transitions:
//   - Created -> InProgress (marketplace acknowledgement)
//
// Any other source status is rejected; acknowledgement of an order that already
// entered fulfillment must not rewind its state.
func (s Status) Confirm() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()))
	}
	return InProgress, nil
}
