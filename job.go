package parallel

import (
	"context"
	"sync"
	"sync/atomic"
)

// JobHandle tracks one submitted job. It is safe for concurrent use.
type JobHandle[R any] struct {
	done       chan struct{}
	cancel     context.CancelFunc
	cancelOnce sync.Once
	cancelled  atomic.Bool
	result     JobResult[R]
}

// Wait blocks until the job reaches a terminal state and returns its result.
func (h *JobHandle[R]) Wait() JobResult[R] {
	<-h.done
	return h.result
}

// Done returns a channel that is closed once the job is terminal.
func (h *JobHandle[R]) Done() <-chan struct{} { return h.done }

// Cancel requests cooperative cancellation: units not yet dispatched never
// start, while units already executing in a slot run to completion and keep
// their Results. Cancel is idempotent and a no-op once the job is terminal.
func (h *JobHandle[R]) Cancel() {
	h.cancelOnce.Do(func() {
		select {
		case <-h.done:
			// already terminal
		default:
			h.cancelled.Store(true)
			h.cancel()
		}
	})
}
