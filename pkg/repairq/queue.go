package repairq

import "context"

// Task names the rows whose aggregates drifted from the ledger and need a
// recompute. One task is enqueued per tip whose counter updates failed.
type Task struct {
	SubjectID    string `json:"subjectId"`
	PayerAddress string `json:"payerAddress"`
	OwnerAddress string `json:"ownerAddress"`
	Reference    string `json:"reference"`
}

// Queue defines the interface for handing repair tasks to the worker.
type Queue interface {
	// EnqueueRepair enqueues a task for asynchronous aggregate repair.
	EnqueueRepair(ctx context.Context, task *Task) error
}
