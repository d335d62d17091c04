package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrAggregateIsNotConstructed is returned when an Aggregate instance was not
// created through the NewAggregate factory function.
var ErrAggregateIsNotConstructed = errors.New("Aggregate must be created via NewAggregate")

// Aggregate is the transient in-memory composition of one Order and its
// related payments, loyalty ledger and stock reservations. It is not a
// persisted entity: a fresh instance is built from repository reads for the
// duration of one operation and discarded once the operation's changes are
// persisted.
//
// The Aggregate is the sole place where state-transition and business-rule
// logic executes. It never auto-corrects an invalid request: every structural
// or business violation is a synchronous, reported error.
//
// Example:
//
//	aggregate, err := order.NewAggregate(o, payments, loyalty, stock, kernel.SystemClock{})
//	if err != nil {
//	    return err
//	}
//	if err := aggregate.SafeTransitionState(order.Paid, "payment settled", true); err != nil {
//	    return err
//	}
//	// persist aggregate.Order() and the touched payments
type Aggregate struct {
	order    *Order
	payments []*Payment
	loyalty  []*LoyaltyEntry
	stock    []*StockReservation
	clock    kernel.Clock

	isConstructed bool
}

// NewAggregate composes an order with its related records. Every child record
// must reference the order; the clock supplies "now" for all mutations so
// transition logic stays deterministic under test.
func NewAggregate(
	o *Order,
	payments []*Payment,
	loyalty []*LoyaltyEntry,
	stock []*StockReservation,
	clock kernel.Clock,
) (*Aggregate, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}

	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.OrderID().IsEqual(o.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("payments",
				fmt.Errorf("payment %s belongs to order %s, not %s", p.ID(), p.OrderID(), o.ID()))
		}
	}
	for _, e := range loyalty {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if !e.OrderID().IsEqual(o.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("loyalty",
				fmt.Errorf("loyalty entry %s belongs to order %s, not %s", e.ID(), e.OrderID(), o.ID()))
		}
	}
	for _, r := range stock {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.OrderID().IsEqual(o.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("stock",
				fmt.Errorf("stock reservation %s belongs to order %s, not %s", r.ID(), r.OrderID(), o.ID()))
		}
	}

	return &Aggregate{
		order:         o,
		payments:      payments,
		loyalty:       loyalty,
		stock:         stock,
		clock:         clock,
		isConstructed: true,
	}, nil
}

// Validate ensures the Aggregate was properly constructed through NewAggregate.
func (a *Aggregate) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAggregateIsNotConstructed
	}
	return nil
}

// Order returns the aggregate root.
func (a *Aggregate) Order() *Order {
	return a.order
}

// Payments returns the order's payments, historical and active.
func (a *Aggregate) Payments() []*Payment {
	return a.payments
}

// LoyaltyEntries returns the order's loyalty ledger.
func (a *Aggregate) LoyaltyEntries() []*LoyaltyEntry {
	return a.loyalty
}

// StockReservations returns the order's reservation rows.
func (a *Aggregate) StockReservations() []*StockReservation {
	return a.stock
}

// TransitionState moves the order to next along an edge of the transition table.
//
// Behavior:
//   - next == current state: idempotent no-op; returns nil without touching
//     Version or UpdatedAt
//   - next outside the enumerated state set: validation error
//   - edge absent from the table: StateTransitionError carrying the order id,
//     current state and attempted state
//   - otherwise: mutates the state, records the reason, bumps Version and UpdatedAt
func (a *Aggregate) TransitionState(next OrderState, reason string) error {
	return a.SafeTransitionState(next, reason, false)
}

// SafeTransitionState performs the same structural check as TransitionState
// and, when enforceBusinessRules is true, additionally validates the domain
// preconditions of the target state: entering Paid requires completed payments
// covering the order total. A business-rule violation fails with a
// StateTransitionError whose message is distinct from the structural one.
//
// Passing enforceBusinessRules=false lets administrative overrides and test
// fixtures move along any structurally valid edge.
func (a *Aggregate) SafeTransitionState(next OrderState, reason string, enforceBusinessRules bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	current := a.order.State()
	if next == current {
		return nil
	}
	if !IsValidTransition(current, next) {
		return NewStateTransitionError(a.order.ID(), current, next)
	}
	if enforceBusinessRules {
		if err := a.checkBusinessRules(next); err != nil {
			return NewStateTransitionErrorWithCause(a.order.ID(), current, next, err)
		}
	}

	a.order.applyState(next, reason, a.clock.Now())
	return nil
}

// IsBusinessRuleCompliantTransition is a non-throwing probe combining the
// structural check and the business-rule check. Callers that want to branch
// rather than catch use it before committing to a transition.
func (a *Aggregate) IsBusinessRuleCompliantTransition(next OrderState) bool {
	if a.Validate() != nil || next.Validate() != nil {
		return false
	}

	current := a.order.State()
	if next == current {
		return true
	}
	if !IsValidTransition(current, next) {
		return false
	}
	return a.checkBusinessRules(next) == nil
}

// checkBusinessRules validates the domain preconditions for entering next.
// The structural edge check has already passed when this runs.
func (a *Aggregate) checkBusinessRules(next OrderState) error {
	//nolint:exhaustive // states without preconditions fall through on purpose
	switch next {
	case Paid:
		if total := a.completedPaymentTotal(); total < a.order.TotalAmount() {
			return fmt.Errorf("entering %s requires completed payments covering the order total: have %d of %d %s",
				Paid, total, a.order.TotalAmount(), a.order.Currency())
		}
	}
	return nil
}

// completedPaymentTotal sums the completed payments denominated in the
// order's currency.
func (a *Aggregate) completedPaymentTotal() int64 {
	var total int64
	for _, p := range a.payments {
		if p.Status() == PaymentCompleted && p.Currency() == a.order.Currency() {
			total += p.Amount()
		}
	}
	return total
}

// ActivePayment returns the order's single Pending payment, or nil when no
// payment is awaiting settlement.
func (a *Aggregate) ActivePayment() *Payment {
	for _, p := range a.payments {
		if p.IsActive() {
			return p
		}
	}
	return nil
}

// CompleteActivePayment settles the active payment with the external
// transaction reference and bumps the order version. Fails with an
// ObjectNotFoundError when no payment is awaiting settlement.
func (a *Aggregate) CompleteActivePayment(transactionRef string) (*Payment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	payment := a.ActivePayment()
	if payment == nil {
		return nil, errs.NewObjectNotFoundError("active payment", a.order.ID().String())
	}

	if err := payment.Complete(transactionRef, a.clock.Now()); err != nil {
		return nil, err
	}

	a.order.touch(a.clock.Now())
	return payment, nil
}

// LoyaltyBalance returns the sum of the loyalty ledger. The ledger is the
// single source of truth; there is no stored balance to drift from it.
func (a *Aggregate) LoyaltyBalance() int64 {
	var balance int64
	for _, e := range a.loyalty {
		balance += e.PointsDelta()
	}
	return balance
}

// EarnLoyalty appends a positive ledger entry. points must be positive.
func (a *Aggregate) EarnLoyalty(points int64, reason string) (*LoyaltyEntry, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if points <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	entry, err := NewLoyaltyEntry(kernel.NewUUID(), a.order.ID(), points, reason, a.clock.Now())
	if err != nil {
		return nil, err
	}

	a.loyalty = append(a.loyalty, entry)
	a.order.touch(a.clock.Now())
	return entry, nil
}

// BurnLoyalty appends a negative ledger entry. Fails with an
// InsufficientBalanceError when the running ledger sum would go negative.
func (a *Aggregate) BurnLoyalty(points int64, reason string) (*LoyaltyEntry, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if points <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	balance := a.LoyaltyBalance()
	if balance-points < 0 {
		return nil, NewInsufficientBalanceError(a.order.ID(), balance, points)
	}

	entry, err := NewLoyaltyEntry(kernel.NewUUID(), a.order.ID(), -points, reason, a.clock.Now())
	if err != nil {
		return nil, err
	}

	a.loyalty = append(a.loyalty, entry)
	a.order.touch(a.clock.Now())
	return entry, nil
}

// ReserveStock appends a Reserved row for the given SKU and quantity.
func (a *Aggregate) ReserveStock(sku string, quantity int) (*StockReservation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	reservation, err := NewStockReservation(kernel.NewUUID(), a.order.ID(), sku, quantity, a.clock.Now())
	if err != nil {
		return nil, err
	}

	a.stock = append(a.stock, reservation)
	a.order.touch(a.clock.Now())
	return reservation, nil
}

// ReleaseStock releases every open reservation, e.g. when the order is
// cancelled. Returns the reservations whose status changed.
func (a *Aggregate) ReleaseStock() ([]*StockReservation, error) {
	return a.settleStock(StockReleased)
}

// CommitStock commits every open reservation once the order is paid.
// Returns the reservations whose status changed.
func (a *Aggregate) CommitStock() ([]*StockReservation, error) {
	return a.settleStock(StockCommitted)
}

func (a *Aggregate) settleStock(target StockStatus) ([]*StockReservation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var settled []*StockReservation
	now := a.clock.Now()
	for _, r := range a.stock {
		if r.Status() != StockReserved {
			continue
		}

		var err error
		if target == StockReleased {
			err = r.Release(now)
		} else {
			err = r.Commit(now)
		}
		if err != nil {
			return nil, err
		}
		settled = append(settled, r)
	}

	if len(settled) > 0 {
		a.order.touch(now)
	}
	return settled, nil
}
