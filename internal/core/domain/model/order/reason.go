package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// CancellationReason classifies why a line was canceled. Reasons are descriptive
// metadata for reporting only; they never influence quantity or status transitions.
type CancellationReason int

const (
	// ReasonUnspecified means no reason was supplied with the cancellation.
	ReasonUnspecified CancellationReason = iota
	// ReasonCustomerRequest marks a cancellation initiated by the customer.
	ReasonCustomerRequest
	// ReasonDamagedInTransit marks goods damaged before reaching the customer.
	ReasonDamagedInTransit
	// ReasonLostInTransit marks goods lost by the carrier.
	ReasonLostInTransit
	// ReasonWrongItem marks a line where the wrong article was picked.
	ReasonWrongItem
	// ReasonOutOfStock marks a line canceled because it cannot be fulfilled.
	ReasonOutOfStock
)

// getReasonStrings returns the wire names for every cancellation reason.
func getReasonStrings() map[CancellationReason]string {
	return map[CancellationReason]string{
		ReasonUnspecified:      "unspecified",
		ReasonCustomerRequest:  "customer_request",
		ReasonDamagedInTransit: "damaged_in_transit",
		ReasonLostInTransit:    "lost_in_transit",
		ReasonWrongItem:        "wrong_item",
		ReasonOutOfStock:       "out_of_stock",
	}
}

// ParseCancellationReason maps an external reason code onto the internal
// enumeration. An empty code parses to ReasonUnspecified; an unrecognized code
// is a validation error, not a silent default.
func ParseCancellationReason(code string) (CancellationReason, error) {
	if code == "" {
		return ReasonUnspecified, nil
	}
	for reason, name := range getReasonStrings() {
		if name == code {
			return reason, nil
		}
	}
	return ReasonUnspecified, errs.NewValueIsInvalidErrorWithCause("cancellationReason",
		fmt.Errorf("%q is not a known cancellation reason", code))
}

// String returns the wire name of the reason.
func (r CancellationReason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "unspecified"
}
