package parallel

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// fifo is the shared pull queue of the DynamicQueue strategy: a ring-buffer
// FIFO with optional capacity. Enqueuing at capacity suspends the caller
// (back-pressure); with a timeout configured it fails with
// ErrQueueCapacityExceeded instead. Worker slots block in pop until an item
// arrives or the queue is closed and drained.
type fifo[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    *queue.Queue
	capacity int // 0 = unbounded
	timeout  time.Duration
	closed   bool
}

func newFIFO[T any](capacity int, timeout time.Duration) *fifo[T] {
	f := &fifo[T]{items: queue.New(), capacity: capacity, timeout: timeout}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// push appends v, waiting while the queue is at capacity. It returns
// ErrQueueCapacityExceeded when the configured timeout elapses at capacity,
// and errQueueClosed when the queue was closed while waiting.
func (f *fifo[T]) push(v T) error {
	var deadline time.Time
	if f.timeout > 0 {
		deadline = time.Now().Add(f.timeout)
		t := time.AfterFunc(f.timeout, f.cond.Broadcast)
		defer t.Stop()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.closed {
			return errQueueClosed
		}
		if f.capacity == 0 || f.items.Length() < f.capacity {
			f.items.Add(v)
			f.cond.Broadcast()
			return nil
		}
		if f.timeout > 0 && !time.Now().Before(deadline) {
			return ErrQueueCapacityExceeded
		}
		f.cond.Wait()
	}
}

// pop removes and returns the head, waiting while the queue is empty.
// ok is false once the queue is closed and drained.
func (f *fifo[T]) pop() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.items.Length() > 0 {
			v := f.items.Remove().(T)
			f.cond.Broadcast()
			return v, true
		}
		if f.closed {
			var zero T
			return zero, false
		}
		f.cond.Wait()
	}
}

// close marks the queue terminal and wakes all waiters. With discard set,
// pending items are dropped so pullers exit immediately (cancellation path).
// The first close wins; later calls are no-ops.
func (f *fifo[T]) close(discard bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if discard {
		f.items = queue.New()
	}
	f.cond.Broadcast()
}

func (f *fifo[T]) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items.Length()
}
