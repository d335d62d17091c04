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

var testInstant = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ref-123", 10000, "USD", testInstant)
	require.NoError(t, err)
	return o
}

func TestNewOrder_Success(t *testing.T) {
	id := kernel.NewUUID()
	o, err := order.NewOrder(id, "ref-123", 10000, "USD", testInstant)

	require.NoError(t, err)
	assert.True(t, o.ID().IsEqual(id))
	assert.Equal(t, "ref-123", o.ReferenceID())
	assert.Equal(t, order.Initial, o.State())
	assert.Equal(t, int64(10000), o.TotalAmount())
	assert.Equal(t, "USD", o.Currency())
	assert.Empty(t, o.WorkflowID())
	assert.Equal(t, int64(1), o.Version())
	assert.Equal(t, int64(0), o.PersistedVersion())
	assert.Equal(t, testInstant, o.CreatedAt())
	assert.Equal(t, testInstant, o.UpdatedAt())
	require.NoError(t, o.Validate())
}

func TestNewOrder_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name     string
		id       kernel.UUID
		amount   int64
		currency string
	}{
		{name: "zero id", id: kernel.UUID{}, amount: 100, currency: "USD"},
		{name: "zero amount", id: kernel.NewUUID(), amount: 0, currency: "USD"},
		{name: "negative amount", id: kernel.NewUUID(), amount: -5, currency: "USD"},
		{name: "missing currency", id: kernel.NewUUID(), amount: 100, currency: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := order.NewOrder(tc.id, "ref", tc.amount, tc.currency, testInstant)
			require.Error(t, err)
		})
	}
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores all fields", func(t *testing.T) {
		id := kernel.NewUUID()
		updated := testInstant.Add(time.Hour)
		o, err := order.RestoreOrder(id, "ref-9", 2500, "EUR", order.Paid, "payment settled",
			"order-lifecycle-"+id.String(), 4, testInstant, updated)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.State())
		assert.Equal(t, "payment settled", o.StateReason())
		assert.Equal(t, int64(4), o.Version())
		assert.Equal(t, int64(4), o.PersistedVersion())
		assert.Equal(t, updated, o.UpdatedAt())
	})

	t.Run("rejects invalid state", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "", 2500, "EUR", order.Unknown, "", "", 1, testInstant, testInstant)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-positive version", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "", 2500, "EUR", order.Initial, "", "", 0, testInstant, testInstant)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("rejects updatedAt before createdAt", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "", 2500, "EUR", order.Initial, "", "", 1,
			testInstant, testInstant.Add(-time.Minute))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_BindWorkflow(t *testing.T) {
	t.Run("binds once", func(t *testing.T) {
		o := newTestOrder(t)
		later := testInstant.Add(time.Second)

		require.NoError(t, o.BindWorkflow("order-lifecycle-1", later))
		assert.Equal(t, "order-lifecycle-1", o.WorkflowID())
		assert.Equal(t, int64(2), o.Version())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("rebinding same identity is a no-op", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.BindWorkflow("order-lifecycle-1", testInstant))
		version := o.Version()

		require.NoError(t, o.BindWorkflow("order-lifecycle-1", testInstant.Add(time.Minute)))
		assert.Equal(t, version, o.Version())
	})

	t.Run("rebinding different identity fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.BindWorkflow("order-lifecycle-1", testInstant))

		err := o.BindWorkflow("order-lifecycle-2", testInstant)
		require.ErrorIs(t, err, order.ErrWorkflowIDAlreadySet)
		assert.Equal(t, "order-lifecycle-1", o.WorkflowID())
	})

	t.Run("empty identity fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.BindWorkflow("", testInstant), errs.ErrValueIsRequired)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	a := newTestOrder(t)
	b := newTestOrder(t)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
