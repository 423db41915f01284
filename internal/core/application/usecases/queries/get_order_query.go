// Package queries contains read operations over the fulfillment store.
// Query handlers bypass the aggregates and read with raw SQL for optimal
// performance, returning flat read models.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderCodeIsRequired = errors.New("order code is required")
)

// GetOrderQuery retrieves one order with its entries and counters.
//
// Example:
//
//	query, err := NewGetOrderQuery("ORD-1")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderCode string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order by its marketplace code.
func NewGetOrderQuery(orderCode string) (GetOrderQuery, error) {
	if orderCode == "" {
		return GetOrderQuery{}, ErrOrderCodeIsRequired
	}

	return GetOrderQuery{
		orderCode: orderCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderCode returns the marketplace order code.
func (q GetOrderQuery) OrderCode() string {
	return q.orderCode
}

// GetOrderEntryResponse represents one order line in the read model.
type GetOrderEntryResponse struct {
	EntryNumber                int
	Quantity                   int
	CanceledOrReturnedQuantity int
	RemainingQuantity          int
	Reason                     string
	Notes                      string
}

// GetOrderQueryResponse represents the order read model.
type GetOrderQueryResponse struct {
	OrderCode     string
	Status        string
	CustomerName  string
	CustomerEmail string
	Created       time.Time
	Modified      time.Time
	Entries       []GetOrderEntryResponse
}
