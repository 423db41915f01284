package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents a request to confirm an ingested order for
// fulfillment, moving it from Created to InProgress.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderCode string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm an order.
func NewConfirmOrderCommand(orderCode string) (ConfirmOrderCommand, error) {
	if orderCode == "" {
		return ConfirmOrderCommand{}, ErrOrderCodeIsRequired
	}

	return ConfirmOrderCommand{
		orderCode: orderCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderCode returns the marketplace order code.
func (c ConfirmOrderCommand) OrderCode() string {
	return c.orderCode
}
