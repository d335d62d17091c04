package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/orchestration"

	"github.com/robfig/cron/v3"
)

// WorkflowAttachmentJob reconciles orders that have no lifecycle run yet.
// Runs every five seconds and starts a run for every unattached order.
type WorkflowAttachmentJob struct {
	orchestrator *orchestration.Orchestrator
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewWorkflowAttachmentJob creates the reconciliation job over the lifecycle
// orchestrator.
func NewWorkflowAttachmentJob(orchestrator *orchestration.Orchestrator, logger *slog.Logger) *WorkflowAttachmentJob {
	return &WorkflowAttachmentJob{
		orchestrator: orchestrator,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "workflow_attachment_job"),
	}
}

// Start begins the reconciliation job to run every five seconds.
func (j *WorkflowAttachmentJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		attached, err := j.orchestrator.AttachUnboundOrders(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Workflow attachment job failed", "error", err)
			return
		}
		if attached > 0 {
			j.logger.InfoContext(ctx, "Attached orders to lifecycle runs", "count", attached)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Workflow attachment job started (running every five seconds)")
	return nil
}

// Stop stops the reconciliation job.
func (j *WorkflowAttachmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Workflow attachment job stopped")
}
