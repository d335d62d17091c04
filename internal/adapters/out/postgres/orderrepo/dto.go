// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate root, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting orders.
// Indexed for lookups by idempotency reference and workflow binding; the
// version column backs the optimistic-concurrency check in Update.
// Timestamps are owned by the domain, so GORM's auto-tracking is disabled.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferenceID string    `gorm:"uniqueIndex"`
	State       string    `gorm:"index"`
	StateReason string
	TotalAmount int64
	Currency    string
	WorkflowID  string `gorm:"index"`
	Version     int64
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain entity to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Bytes(),
		ReferenceID: o.ReferenceID(),
		State:       o.State().String(),
		StateReason: o.StateReason(),
		TotalAmount: o.TotalAmount(),
		Currency:    o.Currency(),
		WorkflowID:  o.WorkflowID(),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain entity using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := order.OrderStateFromString(dto.State)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.ReferenceID,
		dto.TotalAmount,
		dto.Currency,
		state,
		dto.StateReason,
		dto.WorkflowID,
		dto.Version,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
