package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/consignment"
)

// GetConsignmentsByStatusQueryHandler retrieves consignment read models
// filtered by status.
type GetConsignmentsByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetConsignmentsByStatusQueryHandler creates a handler for status-filtered
// consignment queries. Requires a GORM database connection.
func NewGetConsignmentsByStatusQueryHandler(db *gorm.DB) GetConsignmentsByStatusQueryHandler {
	return GetConsignmentsByStatusQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by shipping date, oldest
// first, so tracking jobs poll the longest-travelling consignments first.
func (h GetConsignmentsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetConsignmentsByStatusQuery,
) ([]ConsignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	consignments := make([]ConsignmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			order_code,
			carrier,
			tracking_id,
			status,
			status_text,
			shipping_date,
			expected_delivery,
			receipt_delivery
		FROM consignments
		WHERE status = ?
		ORDER BY shipping_date
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		response, err := scanConsignmentResponse(rows)
		if err != nil {
			return nil, err
		}
		consignments = append(consignments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return consignments, nil
}

// scanConsignmentResponse reads one consignment row in the column order the
// consignment queries select.
func scanConsignmentResponse(rows *sql.Rows) (ConsignmentResponse, error) {
	var response ConsignmentResponse
	var carrier, status int

	err := rows.Scan(
		&response.ConsignmentCode,
		&response.OrderCode,
		&carrier,
		&response.TrackingID,
		&status,
		&response.StatusText,
		&response.ShippingDate,
		&response.ExpectedDelivery,
		&response.ReceiptDelivery,
	)
	if err != nil {
		return ConsignmentResponse{}, err
	}

	response.Carrier = consignment.Carrier(carrier).String()
	response.Status = consignment.Status(status).String()
	return response, nil
}
