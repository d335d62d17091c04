package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testInstant = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// restoredOrder builds a persisted-looking order in the given state.
func restoredOrder(t *testing.T, state order.OrderState) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "ref-1", 10000, "USD", state, "", "", 3, testInstant, testInstant)
	require.NoError(t, err)
	return o
}

// pendingPayment builds an unsettled payment covering the restoredOrder total.
func pendingPayment(t *testing.T, orderID kernel.UUID) *order.Payment {
	t.Helper()
	p, err := order.NewPayment(kernel.NewUUID(), orderID, order.MethodCard, 10000, "USD", testInstant)
	require.NoError(t, err)
	return p
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByReferenceID(ctx context.Context, referenceID string) (*order.Order, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByWorkflowID(ctx context.Context, workflowID string) (*order.Order, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnattached(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, skip int, take int) ([]*order.Order, error) {
	args := m.Called(ctx, skip, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *order.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *order.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Payment), args.Error(1)
}

type MockLoyaltyRepository struct{ mock.Mock }

func (m *MockLoyaltyRepository) Add(ctx context.Context, e *order.LoyaltyEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.LoyaltyEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.LoyaltyEntry), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, r *order.StockReservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, r *order.StockReservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStockRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.StockReservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StockReservation), args.Error(1)
}

// mockTx gives every mock unit of work the same Begin/Commit/Rollback shape.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderPaymentUoW struct{ mockTx }

func (m *MockOrderPaymentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderPaymentUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockOrderPaymentUoWFactory struct{ mock.Mock }

func (m *MockOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderPaymentUoW)
}

type MockOrderLoyaltyUoW struct{ mockTx }

func (m *MockOrderLoyaltyUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderLoyaltyUoW) LoyaltyRepository() ports.LoyaltyRepository {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyRepository)
}

type MockOrderLoyaltyUoWFactory struct{ mock.Mock }

func (m *MockOrderLoyaltyUoWFactory) Create() commands.OrderLoyaltyUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderLoyaltyUoW)
}

type MockOrderStockUoW struct{ mockTx }

func (m *MockOrderStockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderStockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockOrderStockUoWFactory struct{ mock.Mock }

func (m *MockOrderStockUoWFactory) Create() commands.OrderStockUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderStockUoW)
}

type MockSettlementUoW struct{ mockTx }

func (m *MockSettlementUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockSettlementUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockSettlementUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}
