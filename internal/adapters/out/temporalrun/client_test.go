package temporalrun

import (
	"testing"

	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
)

func TestRunStatusFromProto(t *testing.T) {
	testCases := []struct {
		proto enumspb.WorkflowExecutionStatus
		want  ports.RunStatus
	}{
		{enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING, ports.RunStatusRunning},
		{enumspb.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW, ports.RunStatusRunning},
		{enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED, ports.RunStatusCompleted},
		{enumspb.WORKFLOW_EXECUTION_STATUS_CANCELED, ports.RunStatusCancelled},
		{enumspb.WORKFLOW_EXECUTION_STATUS_TERMINATED, ports.RunStatusCancelled},
		{enumspb.WORKFLOW_EXECUTION_STATUS_FAILED, ports.RunStatusFailed},
		{enumspb.WORKFLOW_EXECUTION_STATUS_TIMED_OUT, ports.RunStatusFailed},
		{enumspb.WORKFLOW_EXECUTION_STATUS_UNSPECIFIED, ports.RunStatusUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.proto.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, runStatusFromProto(tc.proto))
		})
	}
}

func TestExcludeTypesFromCategories(t *testing.T) {
	got := excludeTypesFromCategories([]ports.ReplayCategory{ports.ReplayCategorySignals})
	assert.Equal(t, []enumspb.ResetReapplyExcludeType{enumspb.RESET_REAPPLY_EXCLUDE_TYPE_SIGNAL}, got)

	assert.Empty(t, excludeTypesFromCategories(nil))
	assert.Empty(t, excludeTypesFromCategories([]ports.ReplayCategory{ports.ReplayCategoryUnknown}))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(serviceerror.NewUnavailable("backend down")))
	assert.True(t, isRetryable(serviceerror.NewDeadlineExceeded("too slow")))
	assert.False(t, isRetryable(serviceerror.NewNotFound("no such workflow")))
	assert.False(t, isRetryable(serviceerror.NewInvalidArgument("bad request")))
}
