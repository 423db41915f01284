package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrReceiveReturnCommandIsNotConstructed = errors.New(
		"ReceiveReturnCommand must be created via NewReceiveReturnCommand constructor",
	)
	ErrMarketplaceReturnCodeIsRequired = errors.New("marketplace return code is required")
	ErrReturnLinesAreRequired          = errors.New("at least one return line is required")
)

// ReturnAllocation assigns a returned quantity to the consignment the goods
// originally shipped in, together with the parcels travelling back.
type ReturnAllocation struct {
	ConsignmentCode string
	Quantity        int
	TrackingIDs     []string
}

// ReturnLine is one returned order line with its consignment allocations.
type ReturnLine struct {
	OrderEntryNumber int
	Quantity         int
	Reason           string
	Allocations      []ReturnAllocation
}

// ReceiveReturnCommand represents a return announced by the marketplace.
// Receiving creates the full return graph in Receiving status and applies the
// returned quantities to the order and its consignments under the quantity
// guard.
//
// Example:
//
//	cmd, err := NewReceiveReturnCommand("MPR-1", "ORD-1", "Jane Doe", "jane@example.com",
//	    time.Now(), []ReturnLine{{
//	        OrderEntryNumber: 1,
//	        Quantity:         2,
//	        Reason:           "damaged",
//	        Allocations: []ReturnAllocation{{
//	            ConsignmentCode: "CONS-1",
//	            Quantity:        2,
//	            TrackingIDs:     []string{"PKG-1"},
//	        }},
//	    }})
//	if err != nil {
//	    return err
//	}
//	rma, err := handler.Handle(ctx, cmd)
type ReceiveReturnCommand struct { //nolint:recvcheck //using for validation
	marketplaceReturnCode string
	orderCode             string
	customerName          string
	customerEmail         string
	initiationDate        time.Time
	lines                 []ReturnLine

	guard guard.ConstructorGuard
}

// NewReceiveReturnCommand creates a return announcement command. Every line
// must allocate its full quantity across consignments.
func NewReceiveReturnCommand(marketplaceReturnCode, orderCode, customerName, customerEmail string,
	initiationDate time.Time, lines []ReturnLine) (ReceiveReturnCommand, error) {
	cmd := ReceiveReturnCommand{
		customerName:   customerName,
		customerEmail:  customerEmail,
		initiationDate: initiationDate,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMarketplaceReturnCode(marketplaceReturnCode),
		cmd.setOrderCode(orderCode),
		cmd.setCustomerName(customerName),
		cmd.setLines(lines),
	); err != nil {
		return ReceiveReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveReturnCommand) Validate() error {
	return c.guard.Validate(ErrReceiveReturnCommandIsNotConstructed)
}

// MarketplaceReturnCode returns the identifier the marketplace assigned.
func (c ReceiveReturnCommand) MarketplaceReturnCode() string {
	return c.marketplaceReturnCode
}

// OrderCode returns the marketplace order code.
func (c ReceiveReturnCommand) OrderCode() string {
	return c.orderCode
}

// CustomerName returns the customer's name.
func (c ReceiveReturnCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer's email address.
func (c ReceiveReturnCommand) CustomerEmail() string {
	return c.customerEmail
}

// InitiationDate returns the moment the customer initiated the return.
func (c ReceiveReturnCommand) InitiationDate() time.Time {
	return c.initiationDate
}

// Lines returns a copy of the return lines.
func (c ReceiveReturnCommand) Lines() []ReturnLine {
	return append([]ReturnLine(nil), c.lines...)
}

func (c *ReceiveReturnCommand) setMarketplaceReturnCode(code string) error {
	if code == "" {
		return ErrMarketplaceReturnCodeIsRequired
	}

	c.marketplaceReturnCode = code
	return nil
}

func (c *ReceiveReturnCommand) setOrderCode(orderCode string) error {
	if orderCode == "" {
		return ErrOrderCodeIsRequired
	}

	c.orderCode = orderCode
	return nil
}

func (c *ReceiveReturnCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	return nil
}

func (c *ReceiveReturnCommand) setLines(lines []ReturnLine) error {
	if len(lines) == 0 {
		return ErrReturnLinesAreRequired
	}

	for _, line := range lines {
		if line.OrderEntryNumber <= 0 {
			return fmt.Errorf("order entry number %d must be greater than 0", line.OrderEntryNumber)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("quantity %d on entry %d must be greater than 0",
				line.Quantity, line.OrderEntryNumber)
		}
		if len(line.Allocations) == 0 {
			return fmt.Errorf("entry %d has no consignment allocations", line.OrderEntryNumber)
		}

		allocated := 0
		for _, allocation := range line.Allocations {
			if allocation.ConsignmentCode == "" {
				return fmt.Errorf("entry %d has an allocation without a consignment code",
					line.OrderEntryNumber)
			}
			if allocation.Quantity <= 0 {
				return fmt.Errorf("allocation quantity %d on entry %d must be greater than 0",
					allocation.Quantity, line.OrderEntryNumber)
			}
			allocated += allocation.Quantity
		}
		if allocated != line.Quantity {
			return fmt.Errorf("entry %d allocates %d units but announces %d",
				line.OrderEntryNumber, allocated, line.Quantity)
		}
	}

	c.lines = append([]ReturnLine(nil), lines...)
	return nil
}
