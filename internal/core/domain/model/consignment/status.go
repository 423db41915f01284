package consignment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a consignment.
//
// State transitions:
//
//	Created ──> Shipped ──┬──> Delivered
//	   │           │      └──> Returned
//	   └───────────┴──> Canceled
//
// Delivered, Canceled, and Returned are terminal. Consignments created from a
// carrier "shipped" event start directly at Shipped; the Created state exists
// for shipment records imported before the carrier picks them up.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is a shipment record announced but not yet handed to the carrier.
	Created

	// Shipped means the carrier has the parcel and it is travelling to the customer.
	Shipped

	// Delivered means the carrier confirmed receipt by the customer. Terminal.
	Delivered

	// Canceled means the consignment was canceled before reaching the customer. Terminal.
	Canceled

	// Returned means the consignment's goods travelled back to the warehouse. Terminal.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Canceled:  "Canceled",
		Returned:  "Returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Canceled:  "Canceled",
		Returned:  "Returned",
	}
}

// ParseStatus maps a status name onto the Status enumeration. The match is
// case sensitive and Unknown is not accepted.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid consignment status", name))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid consignment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further carrier or reconciliation event can
// change a consignment in this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled || s == Returned
}

// Ship transitions the status to Shipped.
//
// Valid transitions:
//   - Created -> Shipped
func (s Status) Ship() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to ship", s.String()))
	}
	return Shipped, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Shipped -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != Shipped {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()))
	}
	return Delivered, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions:
//   - Created -> Canceled
//   - Shipped -> Canceled
func (s Status) Cancel() (Status, error) {
	if s != Created && s != Shipped {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}
	return Canceled, nil
}

// Return transitions the status to Returned.
//
// Valid transitions:
//   - Shipped -> Returned (carrier routed the parcel back)
//   - Delivered -> Returned (customer-initiated return of delivered goods)
func (s Status) Return() (Status, error) {
	if s != Shipped && s != Delivered {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to return", s.String()))
	}
	return Returned, nil
}
