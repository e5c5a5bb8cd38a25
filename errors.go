package parallel

import "errors"

const Namespace = "parallel"

var (
	// ErrPoolStartup is returned by Submit when no worker slot could be
	// spawned. It is fatal: the job never begins executing and no partial
	// state is visible to the caller.
	ErrPoolStartup = errors.New(Namespace + ": worker pool failed to start")

	// ErrQueueCapacityExceeded is recorded for tasks that could not be
	// enqueued within the configured submit timeout while the shared queue
	// was at capacity. It is recoverable: the caller may resubmit later.
	ErrQueueCapacityExceeded = errors.New(Namespace + ": task queue capacity exceeded")

	// ErrTaskPanicked wraps the recovered panic value of a panicking task.
	ErrTaskPanicked = errors.New(Namespace + ": task execution panicked")

	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)

// errQueueClosed is an internal marker distinguishing "queue torn down under
// cancellation" from capacity back-pressure; it never reaches the caller.
var errQueueClosed = errors.New(Namespace + ": task queue closed")
