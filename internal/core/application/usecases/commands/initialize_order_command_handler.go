package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// InitializeOrderResult reports the outcome of order initialization.
// The same result is returned whether the order was just created or was
// already initialized under the command's reference ID.
type InitializeOrderResult struct {
	OrderID       kernel.UUID
	PaymentID     kernel.UUID
	PaymentStatus string
}

// InitializeOrderCommandHandler handles the business logic for order
// initialization. Creates the order in Initial state together with one
// pending payment, atomically, keyed by the caller's reference ID.
type InitializeOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	clock      kernel.Clock
}

// NewInitializeOrderCommandHandler creates a handler for order initialization.
// Requires an OrderPaymentUoWFactory for transactional persistence and a clock
// for timestamping.
func NewInitializeOrderCommandHandler(uowFactory OrderPaymentUoWFactory, clock kernel.Clock) InitializeOrderCommandHandler {
	return InitializeOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the initialization command.
// When an order already exists under the command's reference ID, returns its
// identifiers unchanged instead of creating a duplicate. Otherwise persists a
// new Order in Initial state and a pending Payment in one transaction.
func (h *InitializeOrderCommandHandler) Handle(ctx context.Context, cmd InitializeOrderCommand) (InitializeOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return InitializeOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InitializeOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	existing, err := orderRepo.GetByReferenceID(ctx, cmd.ReferenceID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return InitializeOrderResult{}, err
	}
	if err == nil {
		return h.existingResult(ctx, uow, existing)
	}

	now := h.clock.Now()
	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.ReferenceID(), cmd.Amount(), cmd.Currency(), now)
	if err != nil {
		return InitializeOrderResult{}, err
	}

	payment, err := order.NewPayment(kernel.NewUUID(), newOrder.ID(), cmd.PaymentMethod(), cmd.Amount(), cmd.Currency(), now)
	if err != nil {
		return InitializeOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return InitializeOrderResult{}, err
	}
	if err = uow.PaymentRepository().Add(ctx, payment); err != nil {
		return InitializeOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return InitializeOrderResult{}, err
	}

	return InitializeOrderResult{
		OrderID:       newOrder.ID(),
		PaymentID:     payment.ID(),
		PaymentStatus: payment.Status().String(),
	}, nil
}

// existingResult rebuilds the result for an order initialized by an earlier
// delivery of the same command.
func (h *InitializeOrderCommandHandler) existingResult(
	ctx context.Context,
	uow OrderPaymentUoW,
	existing *order.Order,
) (InitializeOrderResult, error) {
	payments, err := uow.PaymentRepository().GetByOrderID(ctx, existing.ID())
	if err != nil {
		return InitializeOrderResult{}, err
	}
	if len(payments) == 0 {
		return InitializeOrderResult{}, errs.NewObjectNotFoundError("payment", existing.ID().String())
	}

	first := payments[0]
	return InitializeOrderResult{
		OrderID:       existing.ID(),
		PaymentID:     first.ID(),
		PaymentStatus: first.Status().String(),
	}, nil
}
