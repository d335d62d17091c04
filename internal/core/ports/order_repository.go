package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order entities.
// Provides methods for storing, retrieving, and querying orders by
// identifier, idempotency reference and workflow binding.
type OrderRepository interface {
	// Add persists a new order to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, o *order.Order) error

	// Update persists changes to an existing order.
	// The write is guarded by the version the order was loaded with: when
	// another transaction has moved the row on, Update returns
	// errs.ConcurrencyConflictError and the caller must reload and retry.
	Update(ctx context.Context, o *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByReferenceID retrieves the order initialized under the given
	// idempotency reference. Used to detect duplicate initialization.
	GetByReferenceID(ctx context.Context, referenceID string) (*order.Order, error)

	// GetByWorkflowID retrieves the order bound to the given workflow identity.
	GetByWorkflowID(ctx context.Context, workflowID string) (*order.Order, error)

	// GetAllUnattached retrieves orders that have no workflow binding yet.
	// Used by the reconciliation job to attach stragglers.
	GetAllUnattached(ctx context.Context) ([]*order.Order, error)

	// List retrieves a page of orders ordered by creation time.
	List(ctx context.Context, skip int, take int) ([]*order.Order, error)
}
