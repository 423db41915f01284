package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrShipConsignmentCommandIsNotConstructed = errors.New(
		"ShipConsignmentCommand must be created via NewShipConsignmentCommand constructor",
	)
	ErrConsignmentCodeIsRequired  = errors.New("consignment code is required")
	ErrTrackingIDIsRequired       = errors.New("tracking ID is required")
	ErrConsignmentLinesAreRequired = errors.New("at least one consignment line is required")
)

// ConsignmentLine allocates a quantity of one order entry to a consignment.
type ConsignmentLine struct {
	OrderEntryNumber int
	Quantity         int
}

// ShipConsignmentCommand represents a warehouse shipment announcement: a
// consignment left the warehouse carrying parts of an order.
type ShipConsignmentCommand struct { //nolint:recvcheck //using for validation
	consignmentCode  string
	orderCode        string
	carrier          consignment.Carrier
	trackingID       string
	shippingAddress  consignment.ShippingAddress
	shippingDate     time.Time
	expectedDelivery *time.Time
	lines            []ConsignmentLine

	guard guard.ConstructorGuard
}

// NewShipConsignmentCommand creates a shipment announcement command.
// The carrier name is parsed against the supported carriers up front.
func NewShipConsignmentCommand(
	consignmentCode, orderCode, carrierName, trackingID string,
	shippingAddress consignment.ShippingAddress,
	shippingDate time.Time,
	expectedDelivery *time.Time,
	lines []ConsignmentLine,
) (ShipConsignmentCommand, error) {
	cmd := ShipConsignmentCommand{
		shippingAddress:  shippingAddress,
		shippingDate:     shippingDate,
		expectedDelivery: expectedDelivery,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsignmentCode(consignmentCode),
		cmd.setOrderCode(orderCode),
		cmd.setCarrier(carrierName),
		cmd.setTrackingID(trackingID),
		cmd.setLines(lines),
	); err != nil {
		return ShipConsignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrShipConsignmentCommandIsNotConstructed)
}

// ConsignmentCode returns the consignment code.
func (c ShipConsignmentCommand) ConsignmentCode() string {
	return c.consignmentCode
}

// OrderCode returns the marketplace order code.
func (c ShipConsignmentCommand) OrderCode() string {
	return c.orderCode
}

// Carrier returns the parsed carrier.
func (c ShipConsignmentCommand) Carrier() consignment.Carrier {
	return c.carrier
}

// TrackingID returns the carrier tracking ID.
func (c ShipConsignmentCommand) TrackingID() string {
	return c.trackingID
}

// ShippingAddress returns the destination address.
func (c ShipConsignmentCommand) ShippingAddress() consignment.ShippingAddress {
	return c.shippingAddress
}

// ShippingDate returns the moment the consignment left the warehouse.
func (c ShipConsignmentCommand) ShippingDate() time.Time {
	return c.shippingDate
}

// ExpectedDelivery returns the carrier's delivery estimate, if any.
func (c ShipConsignmentCommand) ExpectedDelivery() *time.Time {
	return c.expectedDelivery
}

// Lines returns a copy of the consignment lines.
func (c ShipConsignmentCommand) Lines() []ConsignmentLine {
	return append([]ConsignmentLine(nil), c.lines...)
}

func (c *ShipConsignmentCommand) setConsignmentCode(code string) error {
	if code == "" {
		return ErrConsignmentCodeIsRequired
	}

	c.consignmentCode = code
	return nil
}

func (c *ShipConsignmentCommand) setOrderCode(orderCode string) error {
	if orderCode == "" {
		return ErrOrderCodeIsRequired
	}

	c.orderCode = orderCode
	return nil
}

func (c *ShipConsignmentCommand) setCarrier(carrierName string) error {
	carrier, err := consignment.ParseCarrier(carrierName)
	if err != nil {
		return err
	}

	c.carrier = carrier
	return nil
}

func (c *ShipConsignmentCommand) setTrackingID(trackingID string) error {
	if trackingID == "" {
		return ErrTrackingIDIsRequired
	}

	c.trackingID = trackingID
	return nil
}

func (c *ShipConsignmentCommand) setLines(lines []ConsignmentLine) error {
	if len(lines) == 0 {
		return ErrConsignmentLinesAreRequired
	}

	for _, line := range lines {
		if line.OrderEntryNumber <= 0 {
			return fmt.Errorf("order entry number %d must be greater than 0", line.OrderEntryNumber)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("quantity %d on entry %d must be greater than 0",
				line.Quantity, line.OrderEntryNumber)
		}
	}

	c.lines = append([]ConsignmentLine(nil), lines...)
	return nil
}
