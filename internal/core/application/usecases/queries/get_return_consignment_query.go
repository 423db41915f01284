package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetReturnConsignmentQueryIsNotConstructed = errors.New(
		"GetReturnConsignmentQuery must be created via NewGetReturnConsignmentQuery constructor",
	)
	ErrConsignmentCodeIsRequired = errors.New("consignment code is required")
)

// GetReturnConsignmentQuery retrieves the return consignment that tracks
// goods travelling back under one consignment code, together with the return
// it belongs to.
type GetReturnConsignmentQuery struct {
	consignmentCode string

	guard guard.ConstructorGuard
}

// NewGetReturnConsignmentQuery creates a query for one return consignment.
func NewGetReturnConsignmentQuery(consignmentCode string) (GetReturnConsignmentQuery, error) {
	if consignmentCode == "" {
		return GetReturnConsignmentQuery{}, ErrConsignmentCodeIsRequired
	}

	return GetReturnConsignmentQuery{
		consignmentCode: consignmentCode,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReturnConsignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetReturnConsignmentQueryIsNotConstructed)
}

// ConsignmentCode returns the consignment code to look up.
func (q GetReturnConsignmentQuery) ConsignmentCode() string {
	return q.consignmentCode
}

// GetReturnConsignmentQueryResponse represents the return consignment read
// model.
type GetReturnConsignmentQueryResponse struct {
	Rma                   string
	MarketplaceReturnCode string
	OrderCode             string
	ConsignmentCode       string
	Quantity              int
	CanceledQuantity      int
	CompletedQuantity     int
	Status                string
	CompletedDate         *time.Time
}
