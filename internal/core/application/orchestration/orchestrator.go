// Package orchestration drives the durable order-lifecycle runs. It sits
// between the API layer and the workflow backend: starting runs, delivering
// signals and resetting runs to a known checkpoint, while keeping the order's
// workflow binding persisted.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/workflows"
)

// OrderUoW is the narrow unit of work the orchestrator needs: it only ever
// touches the order's workflow binding.
type OrderUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
}

// OrderUoWFactory creates new OrderUoW instances.
type OrderUoWFactory interface {
	Create() OrderUoW
}

// Orchestrator manages the durable run bound to each order.
type Orchestrator struct {
	client     ports.WorkflowClient
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewOrchestrator creates an Orchestrator over the given workflow backend.
func NewOrchestrator(
	client ports.WorkflowClient,
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		client:     client,
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger,
	}
}

// StartOrderProcessing starts the lifecycle run for an order under its
// deterministic workflow identity and persists the binding on the order.
// Starting is idempotent: when the run already exists the call attaches to it,
// and rebinding the same identity on the order is a no-op.
func (o *Orchestrator) StartOrderProcessing(ctx context.Context, orderID kernel.UUID) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	workflowID := workflows.WorkflowIDFor(orderID)

	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	if _, err = o.client.StartRun(ctx, workflowID, workflows.LifecycleInput{OrderID: orderID.String()}); err != nil {
		o.logger.Error("failed to start lifecycle run",
			"orderID", orderID.String(), "workflowID", workflowID, "error", err)
		return "", err
	}

	if err = ord.BindWorkflow(workflowID, o.clock.Now()); err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	o.logger.Info("lifecycle run started", "orderID", orderID.String(), "workflowID", workflowID)
	return workflowID, nil
}

// AttachUnboundOrders starts lifecycle runs for orders that have no workflow
// binding yet. Orders are left unbound when starting their run failed right
// after initialization; this is the reconciliation path that picks them up.
// Returns the number of orders attached.
func (o *Orchestrator) AttachUnboundOrders(ctx context.Context) (int, error) {
	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	orders, err := uow.OrderRepository().GetAllUnattached(ctx)
	_ = uow.Rollback(ctx)
	if err != nil {
		return 0, err
	}

	attached := 0
	for _, ord := range orders {
		if _, err = o.StartOrderProcessing(ctx, ord.ID()); err != nil {
			o.logger.Error("failed to attach order to its run",
				"orderID", ord.ID().String(), "error", err)
			continue
		}
		attached++
	}

	return attached, nil
}

// SignalPaymentSuccess notifies the order's run that its payment settled.
func (o *Orchestrator) SignalPaymentSuccess(ctx context.Context, orderID, paymentID kernel.UUID, transactionRef string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := paymentID.Validate(); err != nil {
		return err
	}
	if transactionRef == "" {
		return errs.NewValueIsRequiredError("transactionRef")
	}

	workflowID := workflows.WorkflowIDFor(orderID)
	err := o.client.RunHandle(workflowID).Signal(ctx, workflows.SignalPaymentSuccess, workflows.PaymentSuccessSignal{
		PaymentID:      paymentID.String(),
		TransactionRef: transactionRef,
	})
	if err != nil {
		o.logger.Error("failed to signal payment success",
			"orderID", orderID.String(), "workflowID", workflowID, "error", err)
		return err
	}

	o.logger.Info("payment success signaled", "orderID", orderID.String(), "workflowID", workflowID)
	return nil
}

// SignalCancelOrder asks the order's run to cancel the order.
func (o *Orchestrator) SignalCancelOrder(ctx context.Context, orderID kernel.UUID, reason string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	workflowID := workflows.WorkflowIDFor(orderID)
	err := o.client.RunHandle(workflowID).Signal(ctx, workflows.SignalCancelOrder, workflows.CancelOrderSignal{
		Reason: reason,
	})
	if err != nil {
		o.logger.Error("failed to signal cancellation",
			"orderID", orderID.String(), "workflowID", workflowID, "error", err)
		return err
	}

	o.logger.Info("cancellation signaled", "orderID", orderID.String(), "workflowID", workflowID)
	return nil
}

// ResetToPendingCheckpoint rewinds the order's live run to the point where it
// had just entered Pending and was waiting for signals. Signals delivered
// before the reset are not reapplied, so the run waits for fresh ones. Only a
// Running run can be reset; anything else is a non-retryable failure.
func (o *Orchestrator) ResetToPendingCheckpoint(ctx context.Context, orderID kernel.UUID) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	workflowID := workflows.WorkflowIDFor(orderID)
	description, err := o.client.RunHandle(workflowID).Describe(ctx)
	if err != nil {
		o.logger.Error("failed to describe run",
			"orderID", orderID.String(), "workflowID", workflowID, "error", err)
		return "", err
	}

	if description.Status != ports.RunStatusRunning {
		return "", ports.NewOrchestrationError(workflowID, "reset", false,
			fmt.Errorf("run is %s, only a Running run can be reset", description.Status))
	}

	newRunID, err := o.client.ResetRun(ctx, workflowID, description.RunID,
		ports.CheckpointAwaitingPending, []ports.ReplayCategory{ports.ReplayCategorySignals})
	if err != nil {
		o.logger.Error("failed to reset run",
			"orderID", orderID.String(), "workflowID", workflowID, "error", err)
		return "", err
	}

	o.logger.Info("run reset to pending checkpoint",
		"orderID", orderID.String(), "workflowID", workflowID, "newRunID", newRunID)
	return newRunID, nil
}
