package parallel

import "errors"

// Status is the terminal state of a job.
type Status int

const (
	// Completed: every task ran and none failed.
	Completed Status = iota
	// PartiallyFailed: at least one task failed, or FailFast abandoned
	// not-yet-dispatched tasks after the first failure.
	PartiallyFailed
	// Cancelled: the caller cancelled the job before it finished.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case PartiallyFailed:
		return "PartiallyFailed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one task: either a success value or an error
// implementing TaskMetaError. Exactly one Result is produced per task that
// actually ran; tasks abandoned before dispatch produce none.
type Result[R any] struct {
	TaskID int
	Value  R
	Err    error
}

// JobResult is the final aggregate of a job. Entries is indexed by task
// submission id independent of completion order; a nil entry means the task
// never ran (abandoned under cancellation or FailFast).
type JobResult[R any] struct {
	Entries []*Result[R]
	Status  Status
}

// Values returns the success values in submission order.
func (jr JobResult[R]) Values() []R {
	out := make([]R, 0, len(jr.Entries))
	for _, e := range jr.Entries {
		if e != nil && e.Err == nil {
			out = append(out, e.Value)
		}
	}
	return out
}

// Err joins the errors of all failed tasks, in submission order.
// It returns nil when no task failed.
func (jr JobResult[R]) Err() error {
	var errs []error
	for _, e := range jr.Entries {
		if e != nil && e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errors.Join(errs...)
}
