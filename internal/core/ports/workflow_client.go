package ports

import (
	"context"
	"errors"
	"fmt"
)

// RunStatus is the coarse lifecycle state of a workflow run as reported by
// the durable-execution backend.
type RunStatus int

const (
	RunStatusUnknown RunStatus = iota
	RunStatusNotStarted
	RunStatusRunning
	RunStatusCompleted
	RunStatusCancelled
	RunStatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusNotStarted:
		return "NotStarted"
	case RunStatusRunning:
		return "Running"
	case RunStatusCompleted:
		return "Completed"
	case RunStatusCancelled:
		return "Cancelled"
	case RunStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Checkpoint names a point in a workflow's history that a run can be reset to.
// Checkpoints are resolved by the backend adapter, which maps them to a
// concrete position in the recorded history.
type Checkpoint string

// CheckpointAwaitingPending is the point right after the order was moved to
// Pending and the workflow started waiting for payment or cancellation.
const CheckpointAwaitingPending Checkpoint = "awaiting-pending"

// ReplayCategory names a class of history events that can be excluded from
// reapplication when a run is reset.
type ReplayCategory int

const (
	ReplayCategoryUnknown ReplayCategory = iota
	// ReplayCategorySignals covers external signals delivered to the run.
	ReplayCategorySignals
)

// RunDescription is a snapshot of one workflow run.
type RunDescription struct {
	RunID  string
	Status RunStatus
}

// RunHandle is a reference to a single workflow run, used to interact with it
// after start.
type RunHandle interface {
	// WorkflowID returns the identity of the run this handle points at.
	WorkflowID() string

	// Signal delivers a named signal with an optional payload to the run.
	Signal(ctx context.Context, name string, arg any) error

	// Describe reports the current status of the run.
	Describe(ctx context.Context) (RunDescription, error)
}

// WorkflowClient is the outbound contract for the durable-execution backend.
// It hides the backend SDK behind start/signal/describe/reset primitives so
// the orchestration layer stays backend-agnostic.
type WorkflowClient interface {
	// StartRun starts a workflow run under the given identity, or attaches to
	// the already running one when the identity is taken. Starting is
	// idempotent per workflow identity.
	StartRun(ctx context.Context, workflowID string, input any) (RunHandle, error)

	// RunHandle returns a handle to the run with the given identity without
	// talking to the backend.
	RunHandle(workflowID string) RunHandle

	// ResetRun rewinds the run to the given checkpoint, dropping progress made
	// after it. History events in the excluded categories are not reapplied
	// after the reset point.
	ResetRun(ctx context.Context, workflowID string, runID string, checkpoint Checkpoint, exclude []ReplayCategory) (newRunID string, err error)
}

// ErrOrchestration marks failures of workflow orchestration operations.
var ErrOrchestration = errors.New("orchestration failed")

// OrchestrationError describes a failed interaction with the workflow backend.
// Retryable reports whether the caller may usefully retry the same call.
type OrchestrationError struct {
	WorkflowID string
	Op         string
	Retryable  bool
	Cause      error
}

func NewOrchestrationError(workflowID string, op string, retryable bool, cause error) *OrchestrationError {
	return &OrchestrationError{
		WorkflowID: workflowID,
		Op:         op,
		Retryable:  retryable,
		Cause:      cause,
	}
}

func (e *OrchestrationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("orchestration failed: op is: %s, workflow ID is: %s (cause: %s)", e.Op, e.WorkflowID, e.Cause)
	}
	return fmt.Sprintf("orchestration failed: op is: %s, workflow ID is: %s", e.Op, e.WorkflowID)
}

func (e *OrchestrationError) Unwrap() error {
	return ErrOrchestration
}

// IsRetryableOrchestrationError reports whether err is an orchestration
// failure the caller may retry.
func IsRetryableOrchestrationError(err error) bool {
	var oe *OrchestrationError
	return errors.As(err, &oe) && oe.Retryable
}
