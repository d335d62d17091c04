package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ProcessPaymentCommandHandler settles the order's active payment and moves
// the order to Paid with business rules enforced: the transition only
// succeeds when the completed payments cover the order total. Open stock
// reservations are committed in the same transaction.
//
// Example:
//
//	handler := NewProcessPaymentCommandHandler(uowFactory, kernel.SystemClock{})
//	cmd, _ := NewProcessPaymentCommand(orderID, "txn-42")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("payment processing failed: %w", err)
//	}
//	// Order is now Paid and its reservations are committed
type ProcessPaymentCommandHandler struct {
	uowFactory SettlementUoWFactory
	clock      kernel.Clock
}

// NewProcessPaymentCommandHandler creates a handler for payment settlement.
func NewProcessPaymentCommandHandler(uowFactory SettlementUoWFactory, clock kernel.Clock) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the full aggregate, completes the active payment, applies the
// Paid transition with business rules enforced and commits the open stock
// reservations. All writes happen in one transaction.
func (h *ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	payments, err := uow.PaymentRepository().GetByOrderID(ctx, o.ID())
	if err != nil {
		return err
	}

	reservations, err := uow.StockRepository().GetByOrderID(ctx, o.ID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewAggregate(o, payments, nil, reservations, h.clock)
	if err != nil {
		return err
	}

	payment, err := aggregate.CompleteActivePayment(cmd.TransactionRef())
	if err != nil {
		return err
	}

	if err = aggregate.SafeTransitionState(order.Paid, "payment settled", true); err != nil {
		return err
	}

	committed, err := aggregate.CommitStock()
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Update(ctx, payment); err != nil {
		return err
	}
	for _, r := range committed {
		if err = uow.StockRepository().Update(ctx, r); err != nil {
			return err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
