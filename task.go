package parallel

import (
	"context"
	"fmt"
)

// Task is one immutable, independently executable unit of work producing a
// value of type R. Construct tasks with TaskFunc, TaskValue, or TaskError and
// attach an optional relative cost estimate with WithCost; a task's id is
// assigned by the scheduler from submission order and the payload closure is
// never inspected by the engine.
type Task[R any] struct {
	run     func(context.Context) (R, error)
	cost    float64
	hasCost bool
}

// TaskFunc adapts func(ctx) (R, error) to Task[R].
func TaskFunc[R any](fn func(context.Context) (R, error)) Task[R] {
	return Task[R]{run: fn}
}

// TaskValue adapts func(ctx) R to Task[R].
func TaskValue[R any](fn func(context.Context) R) Task[R] {
	return Task[R]{run: func(ctx context.Context) (R, error) { return fn(ctx), nil }}
}

// TaskError adapts func(ctx) error to Task[R].
// The returned Task yields the zero value of R alongside the error.
func TaskError[R any](fn func(context.Context) error) Task[R] {
	return Task[R]{run: func(ctx context.Context) (R, error) { var zero R; return zero, fn(ctx) }}
}

// WithCost returns a copy of the task carrying a relative cost estimate.
// Costs are dimensionless scalars compared to each other and to the
// per-dispatch overhead; they may be unreliable, and tasks without a cost are
// treated as cost-unknown by batching and partitioning.
func (t Task[R]) WithCost(c float64) Task[R] {
	t.cost = c
	t.hasCost = true
	return t
}

// Cost reports the task's estimated cost, if one was attached.
func (t Task[R]) Cost() (float64, bool) { return t.cost, t.hasCost }

// unit is a task bound to its job-scoped id (submission index).
type unit[R any] struct {
	id   int
	task Task[R]
}

// runTask executes a task with panic containment. A panicking task yields the
// zero value and an error wrapping ErrTaskPanicked; it never takes down the
// worker slot.
func runTask[R any](ctx context.Context, t Task[R]) (result R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return t.run(ctx)
}
