// Package temporalrun implements the workflow backend port on top of the
// Temporal Go SDK. It translates start/signal/describe/reset primitives into
// Temporal API calls and maps backend failures onto orchestration errors.
package temporalrun

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/ports"
	"orderflow/internal/workflows"

	"github.com/google/uuid"
	commonpb "go.temporal.io/api/common/v1"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

var _ ports.WorkflowClient = (*Client)(nil)

// Client is the Temporal-backed ports.WorkflowClient.
type Client struct {
	temporal  client.Client
	namespace string
}

// NewClient creates a Client over an established Temporal connection.
func NewClient(temporalClient client.Client, namespace string) *Client {
	return &Client{
		temporal:  temporalClient,
		namespace: namespace,
	}
}

// StartRun starts the order-lifecycle workflow under the given identity.
// When a run with this identity is already open, Temporal attaches to it
// instead of failing, which makes the call idempotent per workflow identity.
func (c *Client) StartRun(ctx context.Context, workflowID string, input any) (ports.RunHandle, error) {
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             workflows.TaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}

	_, err := c.temporal.ExecuteWorkflow(ctx, options, workflows.OrderLifecycleWorkflow, input)
	if err != nil {
		return nil, ports.NewOrchestrationError(workflowID, "start", isRetryable(err), err)
	}

	return &runHandle{client: c, workflowID: workflowID}, nil
}

// RunHandle returns a handle to the run with the given identity.
func (c *Client) RunHandle(workflowID string) ports.RunHandle {
	return &runHandle{client: c, workflowID: workflowID}
}

// ResetRun rewinds the run to the named checkpoint. The checkpoint is
// resolved against the recorded history: for the awaiting-pending checkpoint
// that is the workflow task completed right after the order entered Pending.
// Signals already delivered are dropped when the signals replay category is
// excluded, so the rewound run waits for fresh ones.
func (c *Client) ResetRun(ctx context.Context, workflowID string, runID string, checkpoint ports.Checkpoint, exclude []ports.ReplayCategory) (string, error) {
	if checkpoint != ports.CheckpointAwaitingPending {
		return "", ports.NewOrchestrationError(workflowID, "reset", false,
			fmt.Errorf("unknown checkpoint %q", checkpoint))
	}

	finishEventID, err := c.findAwaitingPendingEvent(ctx, workflowID, runID)
	if err != nil {
		return "", ports.NewOrchestrationError(workflowID, "reset", isRetryable(err), err)
	}

	response, err := c.temporal.WorkflowService().ResetWorkflowExecution(ctx, &workflowservice.ResetWorkflowExecutionRequest{
		Namespace: c.namespace,
		WorkflowExecution: &commonpb.WorkflowExecution{
			WorkflowId: workflowID,
			RunId:      runID,
		},
		Reason:                    string(checkpoint),
		WorkflowTaskFinishEventId: finishEventID,
		RequestId:                 uuid.NewString(),
		ResetReapplyExcludeTypes:  excludeTypesFromCategories(exclude),
	})
	if err != nil {
		return "", ports.NewOrchestrationError(workflowID, "reset", isRetryable(err), err)
	}

	return response.GetRunId(), nil
}

// findAwaitingPendingEvent scans the run's history for the workflow task
// completed after the pending-transition activity finished. That event id is
// the reset point Temporal accepts.
func (c *Client) findAwaitingPendingEvent(ctx context.Context, workflowID string, runID string) (int64, error) {
	iterator := c.temporal.GetWorkflowHistory(ctx, workflowID, runID, false, enumspb.HISTORY_EVENT_FILTER_TYPE_ALL_EVENT)

	scheduledActivities := make(map[int64]string)
	pendingReached := false

	for iterator.HasNext() {
		event, err := iterator.Next()
		if err != nil {
			return 0, err
		}

		switch event.GetEventType() {
		case enumspb.EVENT_TYPE_ACTIVITY_TASK_SCHEDULED:
			attributes := event.GetActivityTaskScheduledEventAttributes()
			scheduledActivities[event.GetEventId()] = attributes.GetActivityType().GetName()
		case enumspb.EVENT_TYPE_ACTIVITY_TASK_COMPLETED:
			scheduledEventID := event.GetActivityTaskCompletedEventAttributes().GetScheduledEventId()
			if scheduledActivities[scheduledEventID] == workflows.ActivityTransitionOrderToPending {
				pendingReached = true
			}
		case enumspb.EVENT_TYPE_WORKFLOW_TASK_COMPLETED:
			if pendingReached {
				return event.GetEventId(), nil
			}
		}
	}

	return 0, errors.New("run has not entered Pending yet, history has no reset point")
}

type runHandle struct {
	client     *Client
	workflowID string
}

func (h *runHandle) WorkflowID() string {
	return h.workflowID
}

// Signal delivers a named signal to the latest run of the workflow identity.
func (h *runHandle) Signal(ctx context.Context, name string, arg any) error {
	err := h.client.temporal.SignalWorkflow(ctx, h.workflowID, "", name, arg)
	if err != nil {
		return ports.NewOrchestrationError(h.workflowID, "signal", isRetryable(err), err)
	}
	return nil
}

// Describe reports the status of the latest run. A workflow identity Temporal
// has never seen reports NotStarted rather than an error.
func (h *runHandle) Describe(ctx context.Context) (ports.RunDescription, error) {
	response, err := h.client.temporal.DescribeWorkflowExecution(ctx, h.workflowID, "")
	if err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return ports.RunDescription{Status: ports.RunStatusNotStarted}, nil
		}
		return ports.RunDescription{}, ports.NewOrchestrationError(h.workflowID, "describe", isRetryable(err), err)
	}

	info := response.GetWorkflowExecutionInfo()
	return ports.RunDescription{
		RunID:  info.GetExecution().GetRunId(),
		Status: runStatusFromProto(info.GetStatus()),
	}, nil
}

func runStatusFromProto(status enumspb.WorkflowExecutionStatus) ports.RunStatus {
	switch status {
	case enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING, enumspb.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return ports.RunStatusRunning
	case enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return ports.RunStatusCompleted
	case enumspb.WORKFLOW_EXECUTION_STATUS_CANCELED, enumspb.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return ports.RunStatusCancelled
	case enumspb.WORKFLOW_EXECUTION_STATUS_FAILED, enumspb.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return ports.RunStatusFailed
	default:
		return ports.RunStatusUnknown
	}
}

func excludeTypesFromCategories(categories []ports.ReplayCategory) []enumspb.ResetReapplyExcludeType {
	excludeTypes := make([]enumspb.ResetReapplyExcludeType, 0, len(categories))
	for _, category := range categories {
		if category == ports.ReplayCategorySignals {
			excludeTypes = append(excludeTypes, enumspb.RESET_REAPPLY_EXCLUDE_TYPE_SIGNAL)
		}
	}
	return excludeTypes
}

// isRetryable classifies backend failures. Infrastructure-level errors are
// worth retrying; everything else (not found, invalid argument, already
// completed) is not.
func isRetryable(err error) bool {
	var (
		unavailable       *serviceerror.Unavailable
		deadlineExceeded  *serviceerror.DeadlineExceeded
		resourceExhausted *serviceerror.ResourceExhausted
	)
	return errors.As(err, &unavailable) || errors.As(err, &deadlineExceeded) || errors.As(err, &resourceExhausted)
}
