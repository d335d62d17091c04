package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrStockReservationIsNotConstructed is returned when a StockReservation was
// not created through the NewStockReservation or RestoreStockReservation
// factory functions.
var ErrStockReservationIsNotConstructed = errors.New("StockReservation must be created via NewStockReservation or RestoreStockReservation")

// StockStatus represents the state of one stock reservation.
type StockStatus int

const (
	// StockStatusUnknown represents an invalid or undefined status.
	StockStatusUnknown StockStatus = iota

	// StockReserved indicates the quantity is held for the order.
	StockReserved

	// StockReleased indicates the hold was given back, e.g. on cancellation.
	StockReleased

	// StockCommitted indicates the hold was consumed by a paid order.
	// Committed is a final status.
	StockCommitted
)

// getStockStatusStrings returns a map of StockStatus values to their string
// representations.
func getStockStatusStrings() map[StockStatus]string {
	return map[StockStatus]string{
		StockStatusUnknown: "Unknown",
		StockReserved:      "Reserved",
		StockReleased:      "Released",
		StockCommitted:     "Committed",
	}
}

// Validate checks if the StockStatus value is valid.
func (s StockStatus) Validate() error {
	if s != StockReserved && s != StockReleased && s != StockCommitted {
		return errs.NewValueIsInvalidErrorWithCause("stock status",
			fmt.Errorf("%d is not a valid stock status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s StockStatus) String() string {
	if str, ok := getStockStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StockStatusFromString parses a stock status from its stored representation.
func StockStatusFromString(s string) (StockStatus, error) {
	for status, str := range getStockStatusStrings() {
		if str == s && status != StockStatusUnknown {
			return status, nil
		}
	}
	return StockStatusUnknown, errs.NewValueIsInvalidErrorWithCause("stock status",
		fmt.Errorf("%q is not a recognized stock status", s))
}

// StockReservation is one reservation action against an order: a quantity of
// one SKU held, released, or committed. One row exists per reservation action.
type StockReservation struct {
	id      kernel.UUID
	orderID kernel.UUID

	// sku identifies the reserved item
	sku string

	// quantity is the number of units held
	quantity int

	status StockStatus

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewStockReservation creates a reservation in Reserved status.
func NewStockReservation(id, orderID kernel.UUID, sku string, quantity int, now time.Time) (*StockReservation, error) {
	reservation := &StockReservation{
		status:        StockReserved,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		reservation.setID(id),
		reservation.setOrderID(orderID),
		reservation.setSku(sku),
		reservation.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return reservation, nil
}

// RestoreStockReservation reconstructs a reservation from persistence.
func RestoreStockReservation(
	id, orderID kernel.UUID,
	sku string,
	quantity int,
	status StockStatus,
	createdAt, updatedAt time.Time,
) (*StockReservation, error) {
	reservation := &StockReservation{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		reservation.setID(id),
		reservation.setOrderID(orderID),
		reservation.setSku(sku),
		reservation.setQuantity(quantity),
		reservation.setStatus(status),
	); err != nil {
		return nil, err
	}

	return reservation, nil
}

// Validate ensures the reservation was properly constructed through a factory function.
func (r *StockReservation) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStockReservationIsNotConstructed
	}
	return nil
}

// ID returns the reservation's unique identifier.
func (r *StockReservation) ID() kernel.UUID {
	return r.id
}

// OrderID returns the identifier of the owning order.
func (r *StockReservation) OrderID() kernel.UUID {
	return r.orderID
}

// Sku returns the reserved item reference.
func (r *StockReservation) Sku() string {
	return r.sku
}

// Quantity returns the number of units held.
func (r *StockReservation) Quantity() int {
	return r.quantity
}

// Status returns the reservation status.
func (r *StockReservation) Status() StockStatus {
	return r.status
}

// CreatedAt returns the creation instant.
func (r *StockReservation) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the instant of the last mutation.
func (r *StockReservation) UpdatedAt() time.Time {
	return r.updatedAt
}

// Release gives the hold back. Releasing an already-released reservation is an
// idempotent no-op; releasing a committed one is an error, committed is final.
func (r *StockReservation) Release(now time.Time) error {
	if r.status == StockReleased {
		return nil
	}
	if r.status != StockReserved {
		return errs.NewValueIsInvalidErrorWithCause("stock status",
			fmt.Errorf("%s is not a valid status to release a reservation from", r.status))
	}

	r.status = StockReleased
	r.updatedAt = now
	return nil
}

// Commit consumes the hold for a paid order. Committing twice is an idempotent
// no-op; committing a released reservation is an error.
func (r *StockReservation) Commit(now time.Time) error {
	if r.status == StockCommitted {
		return nil
	}
	if r.status != StockReserved {
		return errs.NewValueIsInvalidErrorWithCause("stock status",
			fmt.Errorf("%s is not a valid status to commit a reservation from", r.status))
	}

	r.status = StockCommitted
	r.updatedAt = now
	return nil
}

func (r *StockReservation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *StockReservation) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *StockReservation) setSku(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	r.sku = sku
	return nil
}

func (r *StockReservation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	r.quantity = quantity
	return nil
}

func (r *StockReservation) setStatus(status StockStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
