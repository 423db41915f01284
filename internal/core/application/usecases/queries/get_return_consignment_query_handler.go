package queries

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"
)

// GetReturnConsignmentQueryHandler retrieves one return consignment read
// model by its consignment code.
type GetReturnConsignmentQueryHandler struct {
	db *gorm.DB
}

// NewGetReturnConsignmentQueryHandler creates a handler for return
// consignment lookups. Requires a GORM database connection.
func NewGetReturnConsignmentQueryHandler(db *gorm.DB) GetReturnConsignmentQueryHandler {
	return GetReturnConsignmentQueryHandler{db: db}
}

// Handle executes the lookup. Returns an object not found error when no
// return contains a consignment with the code.
func (h GetReturnConsignmentQueryHandler) Handle(
	ctx context.Context,
	query GetReturnConsignmentQuery,
) (GetReturnConsignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReturnConsignmentQueryResponse{}, err
	}

	var response GetReturnConsignmentQueryResponse
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			r.rma,
			r.marketplace_return_code,
			r.order_code,
			rc.consignment_code,
			rc.quantity,
			rc.canceled_quantity,
			rc.completed_quantity,
			rc.status,
			rc.completed_date
		FROM return_consignments rc
		JOIN return_entries re ON re.rma = rc.rma AND re.order_entry_number = rc.order_entry_number
		JOIN returns r ON r.rma = re.rma
		WHERE rc.consignment_code = ?
	`, query.ConsignmentCode()).Row()

	err := row.Scan(
		&response.Rma,
		&response.MarketplaceReturnCode,
		&response.OrderCode,
		&response.ConsignmentCode,
		&response.Quantity,
		&response.CanceledQuantity,
		&response.CompletedQuantity,
		&status,
		&response.CompletedDate,
	)
	if err != nil {
		return GetReturnConsignmentQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"consignmentCode", query.ConsignmentCode(), err)
	}

	response.Status = returns.Status(status).String()
	return response, nil
}
