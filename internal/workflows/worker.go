package workflows

import (
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

// NewWorker builds the lifecycle worker: one polling loop on TaskQueue with
// the workflow and its activities registered. The caller owns Run/Stop.
func NewWorker(temporalClient client.Client, activities *Activities) worker.Worker {
	w := worker.New(temporalClient, TaskQueue, worker.Options{})
	w.RegisterWorkflow(OrderLifecycleWorkflow)
	w.RegisterActivity(activities)
	return w
}
