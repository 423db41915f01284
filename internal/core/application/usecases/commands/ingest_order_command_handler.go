package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// IngestOrderCommandHandler handles the business logic for order ingestion.
// Creates the order in Created status with one entry per announced line.
//
// Example:
//
//	handler := NewIngestOrderCommandHandler(uowFactory)
//	cmd, _ := NewIngestOrderCommand("ORD-1", "Jane Doe", "", "",
//	    []IngestOrderLine{{EntryNumber: 1, Quantity: 5}})
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order ingestion failed: %w", err)
//	}
type IngestOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewIngestOrderCommandHandler creates a handler for order ingestion.
// Requires an OrderUoWFactory for transactional persistence.
func NewIngestOrderCommandHandler(uowFactory OrderUoWFactory) IngestOrderCommandHandler {
	return IngestOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order ingestion command. Rejects duplicate order codes
// and persists the order atomically with all its entries.
func (h *IngestOrderCommandHandler) Handle(ctx context.Context, cmd IngestOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err := orderRepo.GetByCode(ctx, cmd.OrderCode())
	if err == nil {
		return errs.NewValueIsInvalidErrorWithCause("orderCode",
			fmt.Errorf("order %s already exists", cmd.OrderCode()))
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	customer := order.Contact{
		Name:  cmd.CustomerName(),
		Email: cmd.CustomerEmail(),
		Phone: cmd.CustomerPhone(),
	}

	aggregate, err := order.NewOrder(cmd.OrderCode(), customer, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, line := range cmd.Lines() {
		var address *order.Address
		if line.Street != "" {
			address = &order.Address{
				Street:      line.Street,
				City:        line.City,
				PostalCode:  line.PostalCode,
				CountryCode: line.CountryCode,
			}
		}
		if err = aggregate.AddEntry(line.EntryNumber, line.Quantity, address); err != nil {
			return err
		}
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
