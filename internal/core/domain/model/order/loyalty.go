package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrLoyaltyEntryIsNotConstructed is returned when a LoyaltyEntry instance was
// not created through the NewLoyaltyEntry or RestoreLoyaltyEntry factory functions.
var ErrLoyaltyEntryIsNotConstructed = errors.New("LoyaltyEntry must be created via NewLoyaltyEntry or RestoreLoyaltyEntry")

// LoyaltyEntry is one row of an order's append-only loyalty ledger.
// PointsDelta is signed: positive for an earn, negative for a burn. The
// order's effective balance is always the sum of its entries; there is no
// mutable balance field, and entries are never corrected in place.
type LoyaltyEntry struct {
	id      kernel.UUID
	orderID kernel.UUID

	// pointsDelta is the signed change this entry applies to the balance
	pointsDelta int64

	// reason records why the points moved, for audit
	reason string

	createdAt time.Time

	isConstructed bool
}

// NewLoyaltyEntry creates a ledger entry. pointsDelta must be non-zero and
// reason must be supplied; a ledger row with no explanation is useless for audit.
func NewLoyaltyEntry(id, orderID kernel.UUID, pointsDelta int64, reason string, now time.Time) (*LoyaltyEntry, error) {
	entry := &LoyaltyEntry{
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setPointsDelta(pointsDelta),
		entry.setReason(reason),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreLoyaltyEntry reconstructs a ledger entry from persistence.
func RestoreLoyaltyEntry(id, orderID kernel.UUID, pointsDelta int64, reason string, createdAt time.Time) (*LoyaltyEntry, error) {
	return NewLoyaltyEntry(id, orderID, pointsDelta, reason, createdAt)
}

// Validate ensures the entry was properly constructed through a factory function.
func (e *LoyaltyEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLoyaltyEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *LoyaltyEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the owning order.
func (e *LoyaltyEntry) OrderID() kernel.UUID {
	return e.orderID
}

// PointsDelta returns the signed points change.
func (e *LoyaltyEntry) PointsDelta() int64 {
	return e.pointsDelta
}

// Reason returns the audit reason for the points change.
func (e *LoyaltyEntry) Reason() string {
	return e.reason
}

// CreatedAt returns the instant the entry was appended.
func (e *LoyaltyEntry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *LoyaltyEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *LoyaltyEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *LoyaltyEntry) setPointsDelta(pointsDelta int64) error {
	if pointsDelta == 0 {
		return errs.NewValueIsInvalidErrorWithCause("pointsDelta",
			fmt.Errorf("a ledger entry must move a non-zero number of points"))
	}
	e.pointsDelta = pointsDelta
	return nil
}

func (e *LoyaltyEntry) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	e.reason = reason
	return nil
}
