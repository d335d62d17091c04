package workflows

import (
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
)

type OrderLifecycleWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	activities *Activities
	input      LifecycleInput
}

func (s *OrderLifecycleWorkflowTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.activities = &Activities{}
	s.env.RegisterActivity(s.activities)
	s.input = LifecycleInput{OrderID: kernel.NewUUID().String()}
}

func (s *OrderLifecycleWorkflowTestSuite) AfterTest(_, _ string) {
	s.env.AssertExpectations(s.T())
}

func (s *OrderLifecycleWorkflowTestSuite) TestPaymentSuccessPath() {
	s.env.OnActivity(s.activities.TransitionOrderToPending, mock.Anything, s.input).Return(nil).Once()
	s.env.OnActivity(s.activities.ProcessOrderPayment, mock.Anything, ProcessOrderPaymentInput{
		OrderID:        s.input.OrderID,
		TransactionRef: "txn-42",
	}).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalPaymentSuccess, PaymentSuccessSignal{
			PaymentID:      kernel.NewUUID().String(),
			TransactionRef: "txn-42",
		})
	}, time.Minute)

	s.env.ExecuteWorkflow(OrderLifecycleWorkflow, s.input)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *OrderLifecycleWorkflowTestSuite) TestCancelPath() {
	s.env.OnActivity(s.activities.TransitionOrderToPending, mock.Anything, s.input).Return(nil).Once()
	s.env.OnActivity(s.activities.CancelOrder, mock.Anything, CancelOrderInput{
		OrderID: s.input.OrderID,
		Reason:  "customer request",
	}).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalCancelOrder, CancelOrderSignal{Reason: "customer request"})
	}, time.Minute)

	s.env.ExecuteWorkflow(OrderLifecycleWorkflow, s.input)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *OrderLifecycleWorkflowTestSuite) TestFirstSignalWins() {
	s.env.OnActivity(s.activities.TransitionOrderToPending, mock.Anything, s.input).Return(nil).Once()
	s.env.OnActivity(s.activities.ProcessOrderPayment, mock.Anything, mock.Anything).Return(nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalPaymentSuccess, PaymentSuccessSignal{TransactionRef: "txn-1"})
	}, time.Minute)
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(SignalCancelOrder, CancelOrderSignal{Reason: "too late"})
	}, 2*time.Minute)

	s.env.ExecuteWorkflow(OrderLifecycleWorkflow, s.input)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.env.AssertNotCalled(s.T(), "CancelOrder", mock.Anything, mock.Anything)
}

func (s *OrderLifecycleWorkflowTestSuite) TestPendingTransitionFailureFailsRun() {
	s.env.OnActivity(s.activities.TransitionOrderToPending, mock.Anything, s.input).
		Return(errors.New("order not found"))

	s.env.ExecuteWorkflow(OrderLifecycleWorkflow, s.input)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func TestOrderLifecycleWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLifecycleWorkflowTestSuite))
}

func TestWorkflowIDFor(t *testing.T) {
	id := kernel.NewUUID()
	want := "order-lifecycle-" + id.String()
	if got := WorkflowIDFor(id); got != want {
		t.Fatalf("WorkflowIDFor(%s) = %s, want %s", id, got, want)
	}
}
