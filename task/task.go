package task

// Input is one row of a submitted batch. Task ids are not required to be
// unique within a batch.
type Input struct {
	TaskID   uint64 `json:"task_id" csv:"task_id"`
	TaskType string `json:"task_type" csv:"task_type"`
}

// Status is the lifecycle state of a task instance.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusRunning   Status = "Running"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// IsTerminal reports whether the status is a final outcome.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Result is the outcome of a single blueprint run.
type Result struct {
	TaskID    uint64 `json:"task_id"`
	Status    Status `json:"final_status"`
	ErrorInfo string `json:"error_info,omitempty"`
}

// Completed returns a successful result for id.
func Completed(id uint64) Result {
	return Result{TaskID: id, Status: StatusCompleted}
}

// Failed returns a failed result for id carrying reason.
func Failed(id uint64, reason string) Result {
	return Result{TaskID: id, Status: StatusFailed, ErrorInfo: reason}
}

// Succeeded reports whether the task completed.
func (r Result) Succeeded() bool {
	return r.Status == StatusCompleted
}

// FinalStatus is the externally reported status. Anything that did not
// complete is reported as failed.
func (r Result) FinalStatus() Status {
	if r.Status == StatusCompleted {
		return StatusCompleted
	}
	return StatusFailed
}
