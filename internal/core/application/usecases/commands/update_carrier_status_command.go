package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCarrierStatusCommandIsNotConstructed = errors.New(
	"UpdateCarrierStatusCommand must be created via NewUpdateCarrierStatusCommand constructor",
)

// UpdateCarrierStatusCommand represents one carrier status report for a
// tracked consignment. The carrier code is mapped onto the internal status
// model at construction time, before any transaction starts: an unknown code
// never reaches the database.
//
// Example:
//
//	cmd, err := NewUpdateCarrierStatusCommand("DHL", "TRK-1", "delivered",
//	    "Zustellung erfolgreich", time.Now())
//	if err != nil {
//	    return fmt.Errorf("unmapped carrier status: %w", err)
//	}
type UpdateCarrierStatusCommand struct { //nolint:recvcheck //using for validation
	carrier    consignment.Carrier
	trackingID string
	status     consignment.Status
	statusText string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewUpdateCarrierStatusCommand creates a carrier status command. The status
// code is resolved against the carrier's vocabulary; unknown carriers and
// unknown codes are rejected.
func NewUpdateCarrierStatusCommand(carrierName, trackingID, statusCode, statusText string,
	occurredAt time.Time) (UpdateCarrierStatusCommand, error) {
	if trackingID == "" {
		return UpdateCarrierStatusCommand{}, ErrTrackingIDIsRequired
	}

	carrier, err := consignment.ParseCarrier(carrierName)
	if err != nil {
		return UpdateCarrierStatusCommand{}, err
	}

	status, err := consignment.MapCarrierStatus(carrier, statusCode)
	if err != nil {
		return UpdateCarrierStatusCommand{}, err
	}

	if statusText == "" {
		statusText = statusCode
	}

	return UpdateCarrierStatusCommand{
		carrier:    carrier,
		trackingID: trackingID,
		status:     status,
		statusText: statusText,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCarrierStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCarrierStatusCommandIsNotConstructed)
}

// Carrier returns the reporting carrier.
func (c UpdateCarrierStatusCommand) Carrier() consignment.Carrier {
	return c.carrier
}

// TrackingID returns the carrier tracking ID.
func (c UpdateCarrierStatusCommand) TrackingID() string {
	return c.trackingID
}

// Status returns the mapped internal status.
func (c UpdateCarrierStatusCommand) Status() consignment.Status {
	return c.status
}

// StatusText returns the carrier's textual status description.
func (c UpdateCarrierStatusCommand) StatusText() string {
	return c.statusText
}

// OccurredAt returns the moment the carrier reported the status.
func (c UpdateCarrierStatusCommand) OccurredAt() time.Time {
	return c.occurredAt
}
