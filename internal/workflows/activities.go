package workflows

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/sethvargo/go-retry"
)

// ProcessOrderPaymentInput is the argument of the ProcessOrderPayment activity.
type ProcessOrderPaymentInput struct {
	OrderID        string
	TransactionRef string
}

// CancelOrderInput is the argument of the CancelOrder activity.
type CancelOrderInput struct {
	OrderID string
	Reason  string
}

// Activities bundles the lifecycle command handlers invoked by the durable
// run. Each activity retries optimistic-concurrency conflicts locally with
// exponential backoff; every other error is handed back to the workflow's
// own retry policy.
type Activities struct {
	markPending    commands.MarkOrderPendingCommandHandler
	processPayment commands.ProcessPaymentCommandHandler
	cancelOrder    commands.CancelOrderCommandHandler
}

// NewActivities creates the activity set backed by the given command handlers.
func NewActivities(
	markPending commands.MarkOrderPendingCommandHandler,
	processPayment commands.ProcessPaymentCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
) *Activities {
	return &Activities{
		markPending:    markPending,
		processPayment: processPayment,
		cancelOrder:    cancelOrder,
	}
}

// TransitionOrderToPending moves the order into Pending. Safe to redeliver:
// an order already Pending is a no-op.
func (a *Activities) TransitionOrderToPending(ctx context.Context, input LifecycleInput) error {
	orderID, err := kernel.UUIDFromString(input.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkOrderPendingCommand(orderID)
	if err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return a.markPending.Handle(ctx, cmd)
	})
}

// ProcessOrderPayment settles the order's payment and moves it to Paid.
func (a *Activities) ProcessOrderPayment(ctx context.Context, input ProcessOrderPaymentInput) error {
	orderID, err := kernel.UUIDFromString(input.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewProcessPaymentCommand(orderID, input.TransactionRef)
	if err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return a.processPayment.Handle(ctx, cmd)
	})
}

// CancelOrder cancels the order and releases its stock.
func (a *Activities) CancelOrder(ctx context.Context, input CancelOrderInput) error {
	orderID, err := kernel.UUIDFromString(input.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, input.Reason)
	if err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return a.cancelOrder.Handle(ctx, cmd)
	})
}

// withConflictRetry retries fn while it fails with an optimistic-concurrency
// conflict. Conflicts are short-lived by nature, so a handful of quick
// attempts resolves them without bouncing the activity.
func withConflictRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(5, retry.NewExponential(50*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
}
