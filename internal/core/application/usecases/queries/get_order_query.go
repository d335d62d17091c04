// Package queries contains read-only operations answering API requests.
// Query handlers bypass the domain model and read projections straight from
// the database, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its payments, stock reservations and
// loyalty balance.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	ReferenceID    string
	State          string
	StateReason    string
	TotalAmount    int64
	Currency       string
	WorkflowID     string
	Version        int64
	LoyaltyBalance int64
	Payments       []PaymentResponse
	Reservations   []StockReservationResponse
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentResponse is the read model of one payment record.
type PaymentResponse struct {
	ID             kernel.UUID
	Method         string
	Amount         int64
	Currency       string
	Status         string
	TransactionRef string
	PaidAt         *time.Time
}

// StockReservationResponse is the read model of one stock reservation.
type StockReservationResponse struct {
	ID       kernel.UUID
	Sku      string
	Quantity int
	Status   string
}
