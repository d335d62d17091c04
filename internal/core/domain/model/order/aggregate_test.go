package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregate(t *testing.T, o *order.Order, payments ...*order.Payment) *order.Aggregate {
	t.Helper()
	a, err := order.NewAggregate(o, payments, nil, nil, kernel.FixedClock{Instant: testInstant.Add(time.Minute)})
	require.NoError(t, err)
	return a
}

// orderInState builds an order already moved to the given state through
// structurally valid edges, without business-rule enforcement.
func orderInState(t *testing.T, state order.OrderState) *order.Order {
	t.Helper()
	o := newTestOrder(t)
	a := newTestAggregate(t, o)

	path := map[order.OrderState][]order.OrderState{
		order.Initial:   {},
		order.Pending:   {order.Pending},
		order.Paid:      {order.Pending, order.Paid},
		order.Completed: {order.Pending, order.Paid, order.Completed},
		order.Refunded:  {order.Pending, order.Paid, order.Refunded},
		order.Cancelled: {order.Pending, order.Cancelled},
	}
	for _, next := range path[state] {
		require.NoError(t, a.SafeTransitionState(next, "fixture", false))
	}
	require.Equal(t, state, o.State())
	return o
}

func TestNewAggregate_Validation(t *testing.T) {
	o := newTestOrder(t)

	t.Run("requires a clock", func(t *testing.T) {
		_, err := order.NewAggregate(o, nil, nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a constructed order", func(t *testing.T) {
		_, err := order.NewAggregate(&order.Order{}, nil, nil, nil, kernel.SystemClock{})
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})

	t.Run("rejects a payment of another order", func(t *testing.T) {
		foreign := newTestPayment(t, kernel.NewUUID())
		_, err := order.NewAggregate(o, []*order.Payment{foreign}, nil, nil, kernel.SystemClock{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAggregate_TransitionState(t *testing.T) {
	t.Run("moves along a declared edge", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		require.NoError(t, a.TransitionState(order.Pending, "picked up by lifecycle run"))
		assert.Equal(t, order.Pending, o.State())
		assert.Equal(t, "picked up by lifecycle run", o.StateReason())
		assert.Equal(t, int64(2), o.Version())
		assert.True(t, o.UpdatedAt().After(o.CreatedAt()))
	})

	t.Run("self transition is an idempotent no-op", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)
		version := o.Version()
		updatedAt := o.UpdatedAt()

		require.NoError(t, a.TransitionState(order.Initial, "redelivered"))
		assert.Equal(t, version, o.Version())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("undeclared edge fails with a structural error", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		err := a.TransitionState(order.Completed, "skip ahead")
		require.ErrorIs(t, err, order.ErrStateTransitionNotAllowed)

		var transitionErr *order.StateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.True(t, transitionErr.OrderID.IsEqual(o.ID()))
		assert.Equal(t, order.Initial, transitionErr.CurrentState)
		assert.Equal(t, order.Completed, transitionErr.AttemptedState)
		require.NoError(t, transitionErr.Cause)

		assert.Equal(t, order.Initial, o.State(), "a rejected transition must not mutate the order")
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("state outside the enum fails before the table", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		require.ErrorIs(t, a.TransitionState(order.OrderState(42), ""), errs.ErrValueIsInvalid)
	})

	t.Run("cancelled orders can be reopened", func(t *testing.T) {
		o := orderInState(t, order.Cancelled)
		a := newTestAggregate(t, o)

		require.NoError(t, a.TransitionState(order.Pending, "customer changed their mind"))
		assert.Equal(t, order.Pending, o.State())
	})

	t.Run("direct cancel from paid fails", func(t *testing.T) {
		// Paid has no edge to Cancelled; the refund path is the only route
		// out of Paid besides Completed.
		o := orderInState(t, order.Paid)
		a := newTestAggregate(t, o)

		err := a.TransitionState(order.Cancelled, "buyer remorse")
		require.ErrorIs(t, err, order.ErrStateTransitionNotAllowed)
	})
}

func TestAggregate_SafeTransitionState_PaidBusinessRule(t *testing.T) {
	t.Run("fails without a completed payment", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		pending := newTestPayment(t, o.ID())
		a := newTestAggregate(t, o, pending)

		err := a.SafeTransitionState(order.Paid, "payment settled", true)
		require.ErrorIs(t, err, order.ErrStateTransitionNotAllowed)

		var transitionErr *order.StateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		require.Error(t, transitionErr.Cause, "business-rule violations carry a distinct cause")
		assert.Contains(t, transitionErr.Cause.Error(), "completed payments covering the order total")
	})

	t.Run("fails when completed payments do not cover the total", func(t *testing.T) {
		o := orderInState(t, order.Pending) // total is 10000
		partial, err := order.NewPayment(kernel.NewUUID(), o.ID(), order.MethodCard, 4000, "USD", testInstant)
		require.NoError(t, err)
		require.NoError(t, partial.Complete("txn-1", testInstant))
		a := newTestAggregate(t, o, partial)

		require.ErrorIs(t, a.SafeTransitionState(order.Paid, "", true), order.ErrStateTransitionNotAllowed)
	})

	t.Run("succeeds with a covering completed payment", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		p := newTestPayment(t, o.ID())
		require.NoError(t, p.Complete("txn-1", testInstant))
		a := newTestAggregate(t, o, p)

		require.NoError(t, a.SafeTransitionState(order.Paid, "payment settled", true))
		assert.Equal(t, order.Paid, o.State())
	})

	t.Run("without enforcement the structural check alone governs", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		a := newTestAggregate(t, o)

		require.NoError(t, a.SafeTransitionState(order.Paid, "administrative override", false))
		assert.Equal(t, order.Paid, o.State())
	})

	t.Run("payments in another currency do not count", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		foreign, err := order.NewPayment(kernel.NewUUID(), o.ID(), order.MethodCard, 10000, "EUR", testInstant)
		require.NoError(t, err)
		require.NoError(t, foreign.Complete("txn-1", testInstant))
		a := newTestAggregate(t, o, foreign)

		require.ErrorIs(t, a.SafeTransitionState(order.Paid, "", true), order.ErrStateTransitionNotAllowed)
	})
}

func TestAggregate_IsBusinessRuleCompliantTransition(t *testing.T) {
	o := orderInState(t, order.Pending)
	p := newTestPayment(t, o.ID())
	a := newTestAggregate(t, o, p)

	assert.False(t, a.IsBusinessRuleCompliantTransition(order.Paid), "pending payment does not satisfy the rule")
	assert.False(t, a.IsBusinessRuleCompliantTransition(order.Completed), "no structural edge")
	assert.True(t, a.IsBusinessRuleCompliantTransition(order.Pending), "self transition is compliant")
	assert.True(t, a.IsBusinessRuleCompliantTransition(order.Cancelled))

	require.NoError(t, p.Complete("txn-1", testInstant))
	assert.True(t, a.IsBusinessRuleCompliantTransition(order.Paid))
}

func TestAggregate_CompleteActivePayment(t *testing.T) {
	t.Run("settles the pending payment and bumps the order version", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		p := newTestPayment(t, o.ID())
		a := newTestAggregate(t, o, p)
		version := o.Version()

		settled, err := a.CompleteActivePayment("txn-42")
		require.NoError(t, err)
		assert.True(t, settled.ID().IsEqual(p.ID()))
		assert.Equal(t, order.PaymentCompleted, p.Status())
		assert.Equal(t, version+1, o.Version())
	})

	t.Run("fails when no payment is pending", func(t *testing.T) {
		o := orderInState(t, order.Pending)
		a := newTestAggregate(t, o)

		_, err := a.CompleteActivePayment("txn-42")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestAggregate_Loyalty(t *testing.T) {
	t.Run("balance is the ledger sum", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		_, err := a.EarnLoyalty(100, "signup promo")
		require.NoError(t, err)
		_, err = a.EarnLoyalty(50, "order bonus")
		require.NoError(t, err)
		_, err = a.BurnLoyalty(30, "redeemed at checkout")
		require.NoError(t, err)

		assert.Equal(t, int64(120), a.LoyaltyBalance())
		assert.Len(t, a.LoyaltyEntries(), 3)
	})

	t.Run("burn below zero fails", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)
		_, err := a.EarnLoyalty(20, "signup promo")
		require.NoError(t, err)

		_, err = a.BurnLoyalty(50, "redeemed at checkout")
		require.ErrorIs(t, err, order.ErrInsufficientBalance)

		var balanceErr *order.InsufficientBalanceError
		require.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, int64(20), balanceErr.Balance)
		assert.Equal(t, int64(50), balanceErr.Requested)
		assert.Equal(t, int64(20), a.LoyaltyBalance(), "a rejected burn must not append to the ledger")
	})

	t.Run("non-positive points are rejected", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		_, err := a.EarnLoyalty(0, "promo")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, err = a.BurnLoyalty(-10, "promo")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("each mutation bumps the order version", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)
		version := o.Version()

		_, err := a.EarnLoyalty(10, "promo")
		require.NoError(t, err)
		assert.Equal(t, version+1, o.Version())
	})
}

func TestAggregate_Stock(t *testing.T) {
	t.Run("reserve appends a reserved row", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)

		r, err := a.ReserveStock("SKU-7", 3)
		require.NoError(t, err)
		assert.Equal(t, order.StockReserved, r.Status())
		assert.Len(t, a.StockReservations(), 1)
	})

	t.Run("release settles every open reservation", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)
		_, err := a.ReserveStock("SKU-7", 3)
		require.NoError(t, err)
		_, err = a.ReserveStock("SKU-8", 1)
		require.NoError(t, err)

		released, err := a.ReleaseStock()
		require.NoError(t, err)
		assert.Len(t, released, 2)
		for _, r := range a.StockReservations() {
			assert.Equal(t, order.StockReleased, r.Status())
		}
	})

	t.Run("commit skips already released rows", func(t *testing.T) {
		o := newTestOrder(t)
		a := newTestAggregate(t, o)
		_, err := a.ReserveStock("SKU-7", 3)
		require.NoError(t, err)
		_, err = a.ReleaseStock()
		require.NoError(t, err)

		committed, err := a.CommitStock()
		require.NoError(t, err)
		assert.Empty(t, committed)
	})
}

func TestScenario_CashOrderLifecycle(t *testing.T) {
	// End-to-end aggregate walk: a 100 USD cash order is created, paid,
	// and then a direct cancel from Paid is rejected.
	clock := kernel.FixedClock{Instant: testInstant}
	o, err := order.NewOrder(kernel.NewUUID(), "ref-123", 100, "USD", clock.Now())
	require.NoError(t, err)
	assert.Equal(t, order.Initial, o.State())

	payment, err := order.NewPayment(kernel.NewUUID(), o.ID(), order.MethodCash, 100, "USD", clock.Now())
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPending, payment.Status())

	a, err := order.NewAggregate(o, []*order.Payment{payment}, nil, nil, clock)
	require.NoError(t, err)

	require.NoError(t, a.TransitionState(order.Pending, "lifecycle run started"))

	_, err = a.CompleteActivePayment("txn-100")
	require.NoError(t, err)
	require.NoError(t, a.SafeTransitionState(order.Paid, "payment settled", true))
	assert.Equal(t, order.Paid, o.State())
	assert.Equal(t, order.PaymentCompleted, payment.Status())

	err = a.TransitionState(order.Cancelled, "too late")
	require.ErrorIs(t, err, order.ErrStateTransitionNotAllowed)
	assert.Equal(t, order.Paid, o.State())
}
