// Package pool provides fixed sets of OS-thread-backed worker slots.
//
// Each slot is a goroutine bound to its own OS thread so that compute-bound
// work overlaps across cores; cooperative single-threaded scheduling cannot
// deliver that for CPU-bound units. Dispatch hands a unit to a slot's
// unbuffered mailbox: a slot never receives a second unit before finishing
// its current one, and at any instant at most Size units execute.
package pool

import (
	"errors"
	"runtime"
	"sync"
)

// ErrNoSlots is returned by Start when no worker slot can be spawned.
var ErrNoSlots = errors.New("pool: no worker slots available")

// Pool owns a fixed set of worker slots.
type Pool struct {
	slots []chan func()
	wg    sync.WaitGroup
}

// Start spawns exactly n worker slots. With pin set, each slot's OS thread is
// pinned to logical CPU slot-id (best effort; ignored where unsupported).
func Start(n int, pin bool) (*Pool, error) {
	if n < 1 {
		return nil, ErrNoSlots
	}
	p := &Pool{slots: make([]chan func(), n)}
	for i := range p.slots {
		in := make(chan func())
		p.slots[i] = in
		p.wg.Add(1)
		go func(id int, in chan func()) {
			defer p.wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if pin {
				_ = Pin(id)
			}
			for fn := range in {
				fn()
			}
		}(i, in)
	}
	return p, nil
}

// Size returns the number of slots.
func (p *Pool) Size() int { return len(p.slots) }

// Dispatch sends one unit to the given slot. It blocks until the slot is idle
// and has accepted the unit.
func (p *Pool) Dispatch(slot int, fn func()) {
	p.slots[slot] <- fn
}

// Close stops accepting work and waits for every slot to finish its in-flight
// unit before releasing the underlying threads.
func (p *Pool) Close() {
	for _, in := range p.slots {
		close(in)
	}
	p.wg.Wait()
}
