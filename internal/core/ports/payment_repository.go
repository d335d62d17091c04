package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// PaymentRepository defines the persistence contract for payment records.
// Payments belong to exactly one order and are loaded as part of its aggregate.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, p *order.Payment) error

	// Update persists changes to an existing payment record.
	Update(ctx context.Context, p *order.Payment) error

	// GetByOrderID retrieves all payments recorded for the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.Payment, error)
}
