package queries

import (
	"context"

	"gorm.io/gorm"
)

// SearchConsignmentsQueryHandler searches consignments by substring across
// the identifying columns.
type SearchConsignmentsQueryHandler struct {
	db *gorm.DB
}

// NewSearchConsignmentsQueryHandler creates a handler for consignment
// searches. Requires a GORM database connection.
func NewSearchConsignmentsQueryHandler(db *gorm.DB) SearchConsignmentsQueryHandler {
	return SearchConsignmentsQueryHandler{db: db}
}

// Handle executes the search. The term matches case-insensitively against
// consignment code, tracking ID and order code.
func (h SearchConsignmentsQueryHandler) Handle(
	ctx context.Context,
	query SearchConsignmentsQuery,
) ([]ConsignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := "%" + query.Term() + "%"
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
		WHERE code ILIKE ?
		   OR tracking_id ILIKE ?
		   OR order_code ILIKE ?
		ORDER BY code
	`, pattern, pattern, pattern).Rows()
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
