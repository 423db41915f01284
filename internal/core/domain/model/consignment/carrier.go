package consignment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Carrier identifies the shipping company transporting a consignment.
type Carrier int

const (
	// CarrierUnknown represents an invalid or undefined carrier.
	CarrierUnknown Carrier = iota
	// CarrierDHL is Deutsche Post DHL.
	CarrierDHL
	// CarrierDPD is Dynamic Parcel Distribution.
	CarrierDPD
)

func getCarrierStrings() map[Carrier]string {
	return map[Carrier]string{
		CarrierUnknown: "Unknown",
		CarrierDHL:     "DHL",
		CarrierDPD:     "DPD",
	}
}

// ParseCarrier maps a carrier name onto the internal enumeration.
// Matching is exact; an unrecognized name is a validation error.
func ParseCarrier(name string) (Carrier, error) {
	for carrier, str := range getCarrierStrings() {
		if carrier != CarrierUnknown && str == name {
			return carrier, nil
		}
	}
	return CarrierUnknown, errs.NewValueIsInvalidErrorWithCause("carrier",
		fmt.Errorf("%q is not a known carrier", name))
}

// Validate checks if the Carrier value is valid.
func (c Carrier) Validate() error {
	if c != CarrierDHL && c != CarrierDPD {
		return errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("%d is not a valid carrier", c))
	}
	return nil
}

// String returns the carrier name.
func (c Carrier) String() string {
	if str, ok := getCarrierStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// Carrier status vocabularies. Each carrier pushes its own status codes; these
// tables are the single place where external vocabulary enters the internal one.
// A code absent from its carrier's table is rejected, never defaulted.
var (
	dhlStatusMapping = map[string]Status{
		"delivered": Delivered,
		// DHL reports undeliverable parcels as "failure" and routes them back.
		"failure": Returned,
	}

	dpdStatusMapping = map[string]Status{
		"delivery_customer":      Delivered,
		"pickup_by_consignee":    Delivered,
		"error_return":           Returned,
		"no_pickup_by_consignee": Returned,
		"error_pickup":           Canceled,
	}
)

// MapCarrierStatus translates a carrier-specific status code into the internal
// consignment status. Unrecognized codes return a validation error and must be
// rejected by the caller with the consignment state left unchanged; they are
// never silently mapped to a terminal state.
func MapCarrierStatus(carrier Carrier, code string) (Status, error) {
	var mapping map[string]Status
	switch carrier {
	case CarrierDHL:
		mapping = dhlStatusMapping
	case CarrierDPD:
		mapping = dpdStatusMapping
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("%d is not a valid carrier", carrier))
	}

	status, ok := mapping[code]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("carrierStatus",
			fmt.Errorf("%q is not a known %s status code", code, carrier.String()))
	}
	return status, nil
}
