package jobs

import (
	"fmt"
	"log/slog"

	"orderflow/internal/core/application/orchestration"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	workflowAttachmentJob *WorkflowAttachmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(orchestrator *orchestration.Orchestrator, logger *slog.Logger) *JobManager {
	return &JobManager{
		workflowAttachmentJob: NewWorkflowAttachmentJob(orchestrator, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.workflowAttachmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start workflow attachment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.workflowAttachmentJob.Stop()
}
