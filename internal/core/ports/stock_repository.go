package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// StockRepository defines the persistence contract for stock reservations.
type StockRepository interface {
	// Add persists a new reservation.
	Add(ctx context.Context, r *order.StockReservation) error

	// Update persists changes to an existing reservation.
	Update(ctx context.Context, r *order.StockReservation) error

	// GetByOrderID retrieves all reservations held for the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.StockReservation, error)
}
