package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/guard"
)

var ErrGetConsignmentsByStatusQueryIsNotConstructed = errors.New(
	"GetConsignmentsByStatusQuery must be created via NewGetConsignmentsByStatusQuery constructor",
)

// GetConsignmentsByStatusQuery retrieves every consignment in one status.
// The tracking jobs use it with Shipped to find consignments worth polling.
//
// Example:
//
//	query, err := NewGetConsignmentsByStatusQuery(consignment.Shipped)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetConsignmentsByStatusQueryHandler(db)
//	open, err := handler.Handle(ctx, query)
type GetConsignmentsByStatusQuery struct {
	status consignment.Status

	guard guard.ConstructorGuard
}

// NewGetConsignmentsByStatusQuery creates a query for consignments in the
// given status.
func NewGetConsignmentsByStatusQuery(status consignment.Status) (GetConsignmentsByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetConsignmentsByStatusQuery{}, err
	}

	return GetConsignmentsByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetConsignmentsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetConsignmentsByStatusQueryIsNotConstructed)
}

// Status returns the status to filter by.
func (q GetConsignmentsByStatusQuery) Status() consignment.Status {
	return q.status
}

// ConsignmentResponse represents one consignment in the read model.
type ConsignmentResponse struct {
	ConsignmentCode  string
	OrderCode        string
	Carrier          string
	TrackingID       string
	Status           string
	StatusText       string
	ShippingDate     time.Time
	ExpectedDelivery *time.Time
	ReceiptDelivery  *time.Time
}
