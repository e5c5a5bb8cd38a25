package pool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStart_RequiresAtLeastOneSlot(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Start(n, false)
		require.ErrorIs(t, err, ErrNoSlots)
	}
}

func TestPool_SizeAndClose(t *testing.T) {
	p, err := Start(3, false)
	require.NoError(t, err)
	require.Equal(t, 3, p.Size())
	p.Close()
}

func TestPool_SlotRunsOneUnitAtATime(t *testing.T) {
	p, err := Start(1, false)
	require.NoError(t, err)

	var firstDone, secondStarted time.Time
	done := make(chan struct{})

	p.Dispatch(0, func() {
		time.Sleep(30 * time.Millisecond)
		firstDone = time.Now()
	})
	p.Dispatch(0, func() {
		secondStarted = time.Now()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second unit never ran")
	}
	p.Close()

	require.False(t, secondStarted.Before(firstDone),
		"a slot must finish its current unit before receiving the next")
}

func TestPool_ConcurrencyBoundedBySize(t *testing.T) {
	const slots = 4
	p, err := Start(slots, false)
	require.NoError(t, err)

	var active, peak atomic.Int64
	for i := 0; i < slots; i++ {
		p.Dispatch(i, func() {
			cur := active.Add(1)
			defer active.Add(-1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
		})
	}
	p.Close()

	require.LessOrEqual(t, peak.Load(), int64(slots))
	require.Equal(t, int64(0), active.Load())
}

func TestPool_CloseWaitsForInFlightWork(t *testing.T) {
	p, err := Start(2, false)
	require.NoError(t, err)

	var finished atomic.Int32
	for i := 0; i < 2; i++ {
		p.Dispatch(i, func() {
			time.Sleep(20 * time.Millisecond)
			finished.Add(1)
		})
	}
	p.Close()

	require.Equal(t, int32(2), finished.Load(), "Close must drain in-flight units")
}

func TestPool_PinnedStartIsBestEffort(t *testing.T) {
	// Pinning failures (unsupported platform, restricted environment) must
	// not prevent slots from executing work.
	p, err := Start(2, true)
	require.NoError(t, err)

	ran := make(chan struct{})
	p.Dispatch(0, func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("pinned slot did not run the unit")
	}
	p.Close()
}
