package parallel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskAdapters(t *testing.T) {
	ctx := context.Background()

	t.Run("TaskFunc", func(t *testing.T) {
		v, err := runTask(ctx, TaskFunc[int](func(context.Context) (int, error) { return 42, nil }))
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})

	t.Run("TaskValue", func(t *testing.T) {
		v, err := runTask(ctx, TaskValue[string](func(context.Context) string { return "ok" }))
		require.NoError(t, err)
		require.Equal(t, "ok", v)
	})

	t.Run("TaskError", func(t *testing.T) {
		v, err := runTask(ctx, TaskError[int](func(context.Context) error { return errors.New("boom") }))
		require.EqualError(t, err, "boom")
		require.Zero(t, v)
	})
}

func TestTask_WithCost(t *testing.T) {
	base := TaskValue[int](func(context.Context) int { return 1 })

	_, ok := base.Cost()
	require.False(t, ok, "cost is unknown until attached")

	costed := base.WithCost(2.5)
	c, ok := costed.Cost()
	require.True(t, ok)
	require.Equal(t, 2.5, c)

	_, ok = base.Cost()
	require.False(t, ok, "WithCost must not mutate the original task")
}

func TestRunTask_PanicContained(t *testing.T) {
	v, err := runTask(context.Background(), TaskFunc[int](func(context.Context) (int, error) {
		panic("kaboom")
	}))
	require.ErrorIs(t, err, ErrTaskPanicked)
	require.Contains(t, err.Error(), "kaboom")
	require.Zero(t, v)
}

func TestTaskMetaError(t *testing.T) {
	underlying := errors.New("boom")
	err := newTaskError(underlying, 7)

	require.EqualError(t, err, "boom")
	require.ErrorIs(t, err, underlying)

	id, ok := ExtractTaskID(err)
	require.True(t, ok)
	require.Equal(t, 7, id)

	_, ok = ExtractTaskID(underlying)
	require.False(t, ok)

	require.Nil(t, newTaskError(nil, 1), "nil errors are never tagged")
}

func TestJobResult_ValuesAndErr(t *testing.T) {
	jr := JobResult[int]{
		Entries: []*Result[int]{
			{TaskID: 0, Value: 10},
			{TaskID: 1, Err: errors.New("one")},
			nil, // never ran
			{TaskID: 3, Value: 30},
		},
		Status: PartiallyFailed,
	}

	require.Equal(t, []int{10, 30}, jr.Values())
	require.Error(t, jr.Err())
	require.Contains(t, jr.Err().Error(), "one")

	require.NoError(t, JobResult[int]{}.Err())
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "Completed", Completed.String())
	require.Equal(t, "PartiallyFailed", PartiallyFailed.String())
	require.Equal(t, "Cancelled", Cancelled.String())
	require.Equal(t, "Unknown", Status(99).String())
}
