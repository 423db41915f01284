package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrIngestOrderCommandIsNotConstructed = errors.New(
		"IngestOrderCommand must be created via NewIngestOrderCommand constructor",
	)
	ErrOrderCodeIsRequired    = errors.New("order code is required")
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrOrderLinesAreRequired  = errors.New("at least one order line is required")
)

// IngestOrderLine is one order line as announced by the marketplace.
type IngestOrderLine struct {
	EntryNumber int
	Quantity    int
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// IngestOrderCommand represents a marketplace order announcement. Ingesting
// creates the order in Created status with untouched counters on every line.
//
// Example:
//
//	cmd, err := NewIngestOrderCommand("ORD-1", "Jane Doe", "jane@example.com", "",
//	    []IngestOrderLine{{EntryNumber: 1, Quantity: 5}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewIngestOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to ingest order: %w", err)
//	}
type IngestOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode     string
	customerName  string
	customerEmail string
	customerPhone string
	lines         []IngestOrderLine

	guard guard.ConstructorGuard
}

// NewIngestOrderCommand creates a command to ingest a marketplace order.
// Validates that the order code and customer name are present and that every
// line carries a positive entry number and quantity.
func NewIngestOrderCommand(orderCode, customerName, customerEmail, customerPhone string,
	lines []IngestOrderLine) (IngestOrderCommand, error) {
	cmd := IngestOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setCustomer(customerName, customerEmail, customerPhone),
		cmd.setLines(lines),
	); err != nil {
		return IngestOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestOrderCommand) Validate() error {
	return c.guard.Validate(ErrIngestOrderCommandIsNotConstructed)
}

// OrderCode returns the marketplace order code.
func (c IngestOrderCommand) OrderCode() string {
	return c.orderCode
}

// CustomerName returns the customer's name.
func (c IngestOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer's email address.
func (c IngestOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// CustomerPhone returns the customer's phone number.
func (c IngestOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// Lines returns a copy of the order lines.
func (c IngestOrderCommand) Lines() []IngestOrderLine {
	return append([]IngestOrderLine(nil), c.lines...)
}

func (c *IngestOrderCommand) setOrderCode(orderCode string) error {
	if orderCode == "" {
		return ErrOrderCodeIsRequired
	}

	c.orderCode = orderCode
	return nil
}

func (c *IngestOrderCommand) setCustomer(name, email, phone string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = name
	c.customerEmail = email
	c.customerPhone = phone
	return nil
}

func (c *IngestOrderCommand) setLines(lines []IngestOrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for _, line := range lines {
		if line.EntryNumber <= 0 {
			return fmt.Errorf("entry number %d must be greater than 0", line.EntryNumber)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("quantity %d on entry %d must be greater than 0",
				line.Quantity, line.EntryNumber)
		}
	}

	c.lines = append([]IngestOrderLine(nil), lines...)
	return nil
}
