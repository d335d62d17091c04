package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// LoyaltyRepository defines the persistence contract for loyalty ledger
// entries. The ledger is append-only: entries are never updated or deleted,
// the balance is the sum of deltas.
type LoyaltyRepository interface {
	// Add appends a new ledger entry.
	Add(ctx context.Context, e *order.LoyaltyEntry) error

	// GetByOrderID retrieves all ledger entries recorded for the given order,
	// oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.LoyaltyEntry, error)
}
