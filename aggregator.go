package parallel

// batchEvent is one completion report: a dispatched batch together with the
// outcome of each member task, aligned with the batch's member order.
type batchEvent[R any] struct {
	batch    *batch[R]
	outcomes []outcome[R]
}

type outcome[R any] struct {
	value R
	err   error
}

// aggregator consumes the unordered stream of batch completion events,
// demultiplexes each into per-task Results using the batch's member list,
// and assembles the final JobResult ordered by task id. Under FailFast it
// owns triggering cancellation on the first failure.
type aggregator[R any] struct {
	events   <-chan batchEvent[R]
	failFast bool
	cancel   func()

	// single consumer goroutine; no locks needed
	results  map[int]*Result[R]
	failures int
	done     chan struct{}
}

func newAggregator[R any](events <-chan batchEvent[R], failFast bool, cancel func()) *aggregator[R] {
	return &aggregator[R]{
		events:   events,
		failFast: failFast,
		cancel:   cancel,
		results:  make(map[int]*Result[R]),
		done:     make(chan struct{}),
	}
}

// run consumes completion events until the channel is closed.
func (a *aggregator[R]) run() {
	defer close(a.done)
	for ev := range a.events {
		for i, u := range ev.batch.units {
			out := ev.outcomes[i]
			a.results[u.id] = &Result[R]{TaskID: u.id, Value: out.value, Err: out.err}
			if out.err != nil {
				a.failures++
				if a.failFast {
					// first failure stops further dispatch; in-flight
					// units run to completion
					a.cancel()
				}
			}
		}
	}
}

// wait blocks until the event stream is drained and assembles the final
// JobResult with one entry slot per submitted task. Tasks that never ran
// keep a nil entry.
func (a *aggregator[R]) wait(total int, cancelled bool) JobResult[R] {
	<-a.done
	entries := make([]*Result[R], total)
	for id, r := range a.results {
		entries[id] = r
	}
	status := Completed
	switch {
	case cancelled:
		status = Cancelled
	case a.failures > 0 || len(a.results) < total:
		status = PartiallyFailed
	}
	return JobResult[R]{Entries: entries, Status: status}
}
