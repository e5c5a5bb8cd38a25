package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/parallel/metrics"
	"github.com/ygrebnov/parallel/pool"
)

// Submit starts a job executing the given tasks and returns a handle to it.
// Task ids are assigned from slice order. The worker pool is started before
// Submit returns; a startup failure yields an error wrapping ErrPoolStartup
// and the job never begins executing.
func Submit[R any](ctx context.Context, tasks []Task[R], opts ...Option) (*JobHandle[R], error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	j, err := newJob[R](ctx, cfg)
	if err != nil {
		return nil, err
	}
	go j.run(tasks, nil)
	return j.handle, nil
}

// SubmitChan starts a job consuming a lazily produced task sequence. Task ids
// are assigned from receive order. Under DynamicQueue tasks stream straight
// into the shared queue as they arrive, so queue-capacity back-pressure
// reaches the producer; batching and balancing are bypassed since both need
// the full sequence. Under StaticPool the channel is drained first, because
// partitioning happens up front.
func SubmitChan[R any](ctx context.Context, tasks <-chan Task[R], opts ...Option) (*JobHandle[R], error) {
	if tasks == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "SubmitChan requires a non-nil channel"))
	}
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	j, err := newJob[R](ctx, cfg)
	if err != nil {
		return nil, err
	}
	go j.run(nil, tasks)
	return j.handle, nil
}

// job owns one submission for its lifetime: the pool, the completion event
// channel, and the aggregator. All coordination is message passing over
// channels the job owns; task payloads are the only shared (read-only) data.
type job[R any] struct {
	cfg    *config
	handle *JobHandle[R]
	ctx    context.Context
	cancel context.CancelFunc
	pool   *pool.Pool
	events chan batchEvent[R]
	agg    *aggregator[R]
	met    jobMetrics
}

func newJob[R any](ctx context.Context, cfg *config) (*job[R], error) {
	p, err := pool.Start(poolSize(cfg), cfg.PinSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPoolStartup, err)
	}
	jctx, cancel := context.WithCancel(ctx)
	j := &job[R]{
		cfg:    cfg,
		ctx:    jctx,
		cancel: cancel,
		pool:   p,
		events: make(chan batchEvent[R], p.Size()),
		met:    newJobMetrics(cfg.Metrics),
	}
	j.agg = newAggregator[R](j.events, cfg.FailurePolicy == FailFast, cancel)
	j.handle = &JobHandle[R]{done: make(chan struct{}), cancel: cancel}
	return j, nil
}

// poolSize resolves the effective slot count:
// min(configured, hardware parallelism).
func poolSize(cfg *config) int {
	n := runtime.NumCPU()
	if cfg.PoolSize > 0 && int(cfg.PoolSize) < n {
		n = int(cfg.PoolSize)
	}
	return n
}

func (j *job[R]) run(tasks []Task[R], intake <-chan Task[R]) {
	defer close(j.handle.done)
	defer j.cancel()

	go j.agg.run()

	var total int
	if intake != nil && j.cfg.Strategy == DynamicQueue {
		total = j.runStream(intake)
	} else {
		if intake != nil {
			tasks = j.drain(intake)
		}
		units := make([]unit[R], len(tasks))
		for i, t := range tasks {
			units[i] = unit[R]{id: i, task: t}
		}
		total = len(units)
		j.met.tasks.Add(int64(total))

		// batch first, then order and partition batches, so overhead
		// amortization and load balancing compose
		batches := planBatches(units,
			j.cfg.DispatchOverhead, j.cfg.OverheadThreshold, j.cfg.BatchingFactor, j.pool.Size())
		batches = orderBatches(batches, j.cfg.Balancer)

		if j.cfg.Strategy == StaticPool {
			j.runStatic(batches)
		} else {
			j.runDynamic(batches)
		}
	}

	close(j.events)
	j.handle.result = j.agg.wait(total, j.handle.cancelled.Load())
}

// drain materializes a lazily produced task sequence. StaticPool partitions
// up front and needs the full set before any dispatch.
func (j *job[R]) drain(intake <-chan Task[R]) []Task[R] {
	var tasks []Task[R]
	for {
		select {
		case <-j.ctx.Done():
			return tasks
		case t, ok := <-intake:
			if !ok {
				return tasks
			}
			tasks = append(tasks, t)
		}
	}
}

// runStatic partitions batches once, one group per slot, and dispatches each
// group as a single closure; slots then run with no further coordination.
func (j *job[R]) runStatic(batches []*batch[R]) {
	parts := partitionBatches(batches, j.pool.Size())
	for slot, part := range parts {
		if len(part) == 0 {
			continue
		}
		part := part
		j.pool.Dispatch(slot, func() {
			for _, b := range part {
				if j.ctx.Err() != nil {
					// cancelled: abandon units not yet started
					return
				}
				j.runBatch(b)
			}
		})
	}
	j.pool.Close()
}

// runDynamic feeds batches into the shared FIFO while idle slots pull.
func (j *job[R]) runDynamic(batches []*batch[R]) {
	q := j.startPullers()
	for _, b := range batches {
		if j.ctx.Err() != nil {
			break
		}
		j.feed(q, b)
	}
	q.close(false)
	j.pool.Close()
}

// runStream is the DynamicQueue path for channel intake: tasks flow into the
// queue as singletons in receive order. Returns the number of tasks accepted.
func (j *job[R]) runStream(intake <-chan Task[R]) int {
	q := j.startPullers()
	id := 0
feed:
	for {
		select {
		case <-j.ctx.Done():
			break feed
		case t, ok := <-intake:
			if !ok {
				break feed
			}
			j.met.tasks.Add(1)
			j.feed(q, singleton(unit[R]{id: id, task: t}))
			id++
		}
	}
	q.close(false)
	j.pool.Close()
	return id
}

// startPullers dispatches one pull loop per slot and arranges for the queue
// to be torn down, pending items discarded, on cancellation.
func (j *job[R]) startPullers() *fifo[*batch[R]] {
	q := newFIFO[*batch[R]](int(j.cfg.QueueCapacity), j.cfg.SubmitTimeout)
	go func() {
		<-j.ctx.Done()
		q.close(true)
	}()
	for slot := 0; slot < j.pool.Size(); slot++ {
		j.pool.Dispatch(slot, func() {
			for {
				b, ok := q.pop()
				if !ok {
					return
				}
				j.runBatch(b)
			}
		})
	}
	return q
}

// feed enqueues one batch. A capacity timeout is converted into per-task
// ErrQueueCapacityExceeded results so the caller can retry those tasks; a
// queue closed under cancellation leaves the units never-started.
func (j *job[R]) feed(q *fifo[*batch[R]], b *batch[R]) {
	switch err := q.push(b); {
	case err == nil:
	case errors.Is(err, ErrQueueCapacityExceeded):
		outs := make([]outcome[R], b.size())
		for i, u := range b.units {
			outs[i] = outcome[R]{err: newTaskError(ErrQueueCapacityExceeded, u.id)}
		}
		j.met.failures.Add(int64(b.size()))
		j.events <- batchEvent[R]{batch: b, outcomes: outs}
	default:
	}
}

// runBatch executes all member tasks of a dispatched batch sequentially
// inside one slot and reports a single completion event. A batch is
// non-preemptible: cancellation is observed between batches, not inside one.
func (j *job[R]) runBatch(b *batch[R]) {
	j.met.batches.Add(1)
	j.met.inflight.Add(1)
	defer j.met.inflight.Add(-1)

	outs := make([]outcome[R], b.size())
	for i, u := range b.units {
		start := time.Now()
		v, err := runTask(j.ctx, u.task)
		j.met.duration.Record(time.Since(start).Seconds())
		if err != nil {
			err = newTaskError(err, u.id)
			j.met.failures.Add(1)
		}
		outs[i] = outcome[R]{value: v, err: err}
	}
	j.events <- batchEvent[R]{batch: b, outcomes: outs}
}

type jobMetrics struct {
	tasks    metrics.Counter
	batches  metrics.Counter
	failures metrics.Counter
	inflight metrics.UpDownCounter
	duration metrics.Histogram
}

func newJobMetrics(p metrics.Provider) jobMetrics {
	return jobMetrics{
		tasks: p.Counter("parallel.tasks.submitted",
			metrics.WithUnit("1"), metrics.WithDescription("tasks accepted into jobs")),
		batches: p.Counter("parallel.batches.dispatched",
			metrics.WithUnit("1"), metrics.WithDescription("batches handed to worker slots")),
		failures: p.Counter("parallel.tasks.failed",
			metrics.WithUnit("1"), metrics.WithDescription("tasks that produced an error")),
		inflight: p.UpDownCounter("parallel.units.inflight",
			metrics.WithUnit("1"), metrics.WithDescription("units currently executing")),
		duration: p.Histogram("parallel.task.duration",
			metrics.WithUnit("seconds"), metrics.WithDescription("per-task execution time")),
	}
}
