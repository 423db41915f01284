package queries

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves one order read model from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for one order. Returns an object not found error
// when no order carries the code.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			status,
			customer_name,
			customer_email,
			created,
			modified
		FROM orders
		WHERE code = ?
	`, query.OrderCode()).Row()

	err := row.Scan(
		&response.OrderCode,
		&status,
		&response.CustomerName,
		&response.CustomerEmail,
		&response.Created,
		&response.Modified,
	)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"orderCode", query.OrderCode(), err)
	}
	response.Status = order.Status(status).String()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			entry_number,
			quantity,
			canceled_or_returned_quantity,
			reason,
			notes
		FROM order_entries
		WHERE order_code = ?
		ORDER BY entry_number
	`, query.OrderCode()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderEntryResponse
		var reason int

		err = rows.Scan(
			&entry.EntryNumber,
			&entry.Quantity,
			&entry.CanceledOrReturnedQuantity,
			&reason,
			&entry.Notes,
		)
		if err != nil {
			return GetOrderQueryResponse{}, err
		}

		entry.RemainingQuantity = entry.Quantity - entry.CanceledOrReturnedQuantity
		entry.Reason = order.CancellationReason(reason).String()
		response.Entries = append(response.Entries, entry)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
