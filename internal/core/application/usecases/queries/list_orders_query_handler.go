package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler answers paged order listings with raw SQL over the
// read connection. Results are ordered by creation time, oldest first, with
// the identifier as a tie breaker so pages are stable.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the paging query.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListOrdersQueryResponse, 0, query.Take())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference_id,
			state,
			total_amount,
			currency,
			created_at
		FROM orders
		ORDER BY created_at, id
		OFFSET ? LIMIT ?
	`, query.Skip(), query.Take()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp ListOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.ReferenceID,
			&orderResp.State,
			&orderResp.TotalAmount,
			&orderResp.Currency,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderResp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
