package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a return, a return line, or a
// return consignment.
//
// State transitions:
//
//	Receiving ──> Received ──> Completed
//	    │            │
//	    └────────────┴──> Canceled
//
// Completed and Canceled are terminal. The dual spelling the marketplace uses
// for canceled states is collapsed into the single Canceled constant here.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Receiving means the return was announced and parcels are travelling back.
	Receiving

	// Received means returned goods arrived at the warehouse but processing
	// has not finished.
	Received

	// Completed means the return was processed in full. Terminal.
	Completed

	// Canceled means the return was abandoned or rejected. Terminal.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Receiving: "Receiving",
		Received:  "Received",
		Completed: "Completed",
		Canceled:  "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Receiving: "Receiving",
		Received:  "Received",
		Completed: "Completed",
		Canceled:  "Canceled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid return status", s))
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

// IsTerminal reports whether no further event can change this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// Receive transitions the status to Received.
//
// Valid transitions:
//   - Receiving -> Received
//   - Received -> Received (repeated package arrivals are no-ops)
func (s Status) Receive() (Status, error) {
	if s != Receiving && s != Received {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to receive", s.String()))
	}
	return Received, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Receiving -> Completed
//   - Received -> Completed
func (s Status) Complete() (Status, error) {
	if s != Receiving && s != Received {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()))
	}
	return Completed, nil
}

// Cancel transitions the status to Canceled.
//
// Valid transitions:
//   - Receiving -> Canceled
//   - Received -> Canceled
func (s Status) Cancel() (Status, error) {
	if s != Receiving && s != Received {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}
	return Canceled, nil
}

// PackageStatus represents the carrier-reported state of one return package.
// It is deliberately a separate enumeration from Status: package states come
// from the carrier vocabulary, return states from the reconciliation engine.
type PackageStatus int

const (
	// PackageUnknown represents an invalid or undefined package status.
	PackageUnknown PackageStatus = iota
	// PackageReceiving means the parcel is still travelling back.
	PackageReceiving
	// PackageDelivered means the carrier delivered the parcel to the warehouse.
	PackageDelivered
	// PackageCanceled means the carrier reported a cancellation code for the parcel.
	PackageCanceled
)

func getPackageStatusStrings() map[PackageStatus]string {
	return map[PackageStatus]string{
		PackageUnknown:   "Unknown",
		PackageReceiving: "receiving",
		PackageDelivered: "delivered",
		PackageCanceled:  "canceled",
	}
}

// ParsePackageStatus maps a carrier package status code onto the internal
// enumeration. Unrecognized codes are rejected, never defaulted to a terminal
// state.
func ParsePackageStatus(code string) (PackageStatus, error) {
	for status, name := range getPackageStatusStrings() {
		if status != PackageUnknown && name == code {
			return status, nil
		}
	}
	return PackageUnknown, errs.NewValueIsInvalidErrorWithCause("packageStatus",
		fmt.Errorf("%q is not a known package status code", code))
}

// Validate checks if the PackageStatus value is valid.
func (s PackageStatus) Validate() error {
	if s != PackageReceiving && s != PackageDelivered && s != PackageCanceled {
		return errs.NewValueIsInvalidErrorWithCause("packageStatus",
			fmt.Errorf("%d is not a valid package status", s))
	}
	return nil
}

// String returns the wire name of the package status.
func (s PackageStatus) String() string {
	if str, ok := getPackageStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
