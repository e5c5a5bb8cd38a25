package parallel

import "context"

// Execute submits tasks and blocks until the job reaches a terminal state.
// The error is non-nil only for startup/configuration failures; task
// failures live in the JobResult.
func Execute[R any](ctx context.Context, tasks []Task[R], opts ...Option) (JobResult[R], error) {
	h, err := Submit(ctx, tasks, opts...)
	if err != nil {
		return JobResult[R]{}, err
	}
	return h.Wait(), nil
}

// Map fans items out through fn and returns the success values in submission
// order together with the joined task errors.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	tasks := make([]Task[R], 0, len(items))
	for i := range items {
		item := items[i] // capture
		tasks = append(tasks, TaskFunc[R](func(c context.Context) (R, error) { return fn(c, item) }))
	}
	jr, err := Execute(ctx, tasks, opts...)
	if err != nil {
		return nil, err
	}
	return jr.Values(), jr.Err()
}

// ForEach applies fn to each item concurrently and returns the joined errors,
// or nil when every application succeeded.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	if len(items) == 0 {
		return nil
	}
	tasks := make([]Task[struct{}], 0, len(items))
	for i := range items {
		item := items[i] // capture
		tasks = append(tasks, TaskError[struct{}](func(c context.Context) error { return fn(c, item) }))
	}
	jr, err := Execute(ctx, tasks, opts...)
	if err != nil {
		return err
	}
	return jr.Err()
}
