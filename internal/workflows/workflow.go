// Package workflows contains the durable order-lifecycle run and its
// activities. The workflow owns the long-lived conversation with one order:
// it drives the order into Pending, then waits for a payment-success or
// cancel signal and applies the matching lifecycle command.
package workflows

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// TaskQueue is the queue the lifecycle worker polls.
	TaskQueue = "order-lifecycle"

	// WorkflowIDPrefix namespaces workflow identities. One workflow identity
	// exists per order, so starting is naturally idempotent.
	WorkflowIDPrefix = "order-lifecycle-"

	// SignalPaymentSuccess notifies the run that the order's payment settled.
	SignalPaymentSuccess = "payment-success"

	// SignalCancelOrder asks the run to cancel the order.
	SignalCancelOrder = "cancel-order"

	// ActivityTransitionOrderToPending is the registered name of the activity
	// that moves the order into Pending. The reset checkpoint is anchored to
	// its completion.
	ActivityTransitionOrderToPending = "TransitionOrderToPending"
)

// WorkflowIDFor returns the deterministic workflow identity of an order.
func WorkflowIDFor(orderID kernel.UUID) string {
	return WorkflowIDPrefix + orderID.String()
}

// LifecycleInput starts one order-lifecycle run.
type LifecycleInput struct {
	OrderID string
}

// PaymentSuccessSignal carries the settlement details delivered with
// SignalPaymentSuccess.
type PaymentSuccessSignal struct {
	PaymentID      string
	TransactionRef string
}

// CancelOrderSignal carries the reason delivered with SignalCancelOrder.
type CancelOrderSignal struct {
	Reason string
}

// OrderLifecycleWorkflow is the durable run bound to one order.
//
// The run first transitions the order to Pending, then blocks until either a
// payment-success or a cancel signal arrives. The corresponding lifecycle
// command executes as an activity with its own retry policy, so transient
// infrastructure failures and optimistic-concurrency conflicts never fail the
// run. After the terminal activity completes the run ends.
func OrderLifecycleWorkflow(ctx workflow.Context, input LifecycleInput) error {
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)
	logger := workflow.GetLogger(ctx)

	err := workflow.ExecuteActivity(ctx, ActivityTransitionOrderToPending, input).Get(ctx, nil)
	if err != nil {
		return err
	}
	logger.Info("order awaiting payment", "orderID", input.OrderID)

	var paymentSignal PaymentSuccessSignal
	var cancelSignal CancelOrderSignal
	var paid bool

	selector := workflow.NewSelector(ctx)
	selector.AddReceive(workflow.GetSignalChannel(ctx, SignalPaymentSuccess), func(c workflow.ReceiveChannel, _ bool) {
		c.Receive(ctx, &paymentSignal)
		paid = true
	})
	selector.AddReceive(workflow.GetSignalChannel(ctx, SignalCancelOrder), func(c workflow.ReceiveChannel, _ bool) {
		c.Receive(ctx, &cancelSignal)
	})
	selector.Select(ctx)

	if paid {
		logger.Info("payment settled", "orderID", input.OrderID, "paymentID", paymentSignal.PaymentID)
		return workflow.ExecuteActivity(ctx, "ProcessOrderPayment", ProcessOrderPaymentInput{
			OrderID:        input.OrderID,
			TransactionRef: paymentSignal.TransactionRef,
		}).Get(ctx, nil)
	}

	logger.Info("order cancelled", "orderID", input.OrderID, "reason", cancelSignal.Reason)
	return workflow.ExecuteActivity(ctx, "CancelOrder", CancelOrderInput{
		OrderID: input.OrderID,
		Reason:  cancelSignal.Reason,
	}).Get(ctx, nil)
}
