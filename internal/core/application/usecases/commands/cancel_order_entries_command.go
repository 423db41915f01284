package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelOrderEntriesCommandIsNotConstructed = errors.New(
		"CancelOrderEntriesCommand must be created via NewCancelOrderEntriesCommand constructor",
	)
	ErrCancellationLinesAreRequired = errors.New("at least one cancellation line is required")
)

// CancellationLine is one requested line cancellation: which entry, how many
// units, and why.
type CancellationLine struct {
	EntryNumber int
	Quantity    int
	Reason      order.CancellationReason
	Notes       string
}

// CancelOrderEntriesCommand represents a batch cancellation request against
// one order. Each line is processed independently: a rejected line never
// blocks the others.
//
// Example:
//
//	cmd, err := NewCancelOrderEntriesCommand("ORD-1", []CancellationLineInput{
//	    {EntryNumber: 1, Quantity: 2, Reason: "customer_request"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid cancellation: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	for _, line := range result.Lines {
//	    if line.Err != nil {
//	        // Report the rejected line back to the marketplace
//	    }
//	}
type CancelOrderEntriesCommand struct { //nolint:recvcheck //using for validation
	orderCode string
	lines     []CancellationLine

	guard guard.ConstructorGuard
}

// CancellationLineInput is the wire-level form of a cancellation line, with
// the reason still in the marketplace vocabulary.
type CancellationLineInput struct {
	EntryNumber int
	Quantity    int
	Reason      string
	Notes       string
}

// NewCancelOrderEntriesCommand creates a batch cancellation command.
// Reasons are parsed from the marketplace vocabulary up front: an unknown
// reason rejects the whole command, not just the line.
func NewCancelOrderEntriesCommand(orderCode string,
	lines []CancellationLineInput) (CancelOrderEntriesCommand, error) {
	cmd := CancelOrderEntriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setLines(lines),
	); err != nil {
		return CancelOrderEntriesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderEntriesCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderEntriesCommandIsNotConstructed)
}

// OrderCode returns the marketplace order code.
func (c CancelOrderEntriesCommand) OrderCode() string {
	return c.orderCode
}

// Lines returns a copy of the cancellation lines.
func (c CancelOrderEntriesCommand) Lines() []CancellationLine {
	return append([]CancellationLine(nil), c.lines...)
}

func (c *CancelOrderEntriesCommand) setOrderCode(orderCode string) error {
	if orderCode == "" {
		return ErrOrderCodeIsRequired
	}

	c.orderCode = orderCode
	return nil
}

func (c *CancelOrderEntriesCommand) setLines(lines []CancellationLineInput) error {
	if len(lines) == 0 {
		return ErrCancellationLinesAreRequired
	}

	parsed := make([]CancellationLine, 0, len(lines))
	for _, line := range lines {
		if line.EntryNumber <= 0 {
			return fmt.Errorf("entry number %d must be greater than 0", line.EntryNumber)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("quantity %d on entry %d must be greater than 0",
				line.Quantity, line.EntryNumber)
		}

		reason, err := order.ParseCancellationReason(line.Reason)
		if err != nil {
			return err
		}

		parsed = append(parsed, CancellationLine{
			EntryNumber: line.EntryNumber,
			Quantity:    line.Quantity,
			Reason:      reason,
			Notes:       line.Notes,
		})
	}

	c.lines = parsed
	return nil
}
