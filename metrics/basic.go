package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// BasicProvider is a simple in-memory Provider. It is concurrency-safe and
// suitable for tests, examples, and lightweight apps. Instruments are created
// on demand by name and reused for the same name; instrument options are
// advisory and ignored.
type BasicProvider struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
	}
}

// Counter returns the monotonic counter registered under name, creating it
// on first use.
func (p *BasicProvider) Counter(name string, _ ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		c = &BasicCounter{}
		p.counters[name] = c
	}
	return c
}

// UpDownCounter returns the up/down counter registered under name, creating
// it on first use.
func (p *BasicProvider) UpDownCounter(name string, _ ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.updowns[name]
	if !ok {
		u = &BasicUpDownCounter{}
		p.updowns[name] = u
	}
	return u
}

// Histogram returns the histogram registered under name, creating it on
// first use.
func (p *BasicProvider) Histogram(name string, _ ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.histograms[name]
	if !ok {
		h = &BasicHistogram{min: math.Inf(1), max: math.Inf(-1)}
		p.histograms[name] = h
	}
	return h
}

// CounterValue returns the current value of the named counter (0 if absent).
func (p *BasicProvider) CounterValue(name string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return c.Value()
	}
	return 0
}

// UpDownValue returns the current value of the named up/down counter
// (0 if absent).
func (p *BasicProvider) UpDownValue(name string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.updowns[name]; ok {
		return u.Value()
	}
	return 0
}

// HistogramSnapshot returns count, sum, min, and max of the named histogram.
// With no recordings, min and max are +Inf/-Inf respectively.
func (p *BasicProvider) HistogramSnapshot(name string) (count int64, sum, min, max float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[name]; ok {
		return h.Snapshot()
	}
	return 0, 0, math.Inf(1), math.Inf(-1)
}

// BasicCounter is an atomic monotonic counter.
type BasicCounter struct {
	v atomic.Int64
}

// Add increments the counter. Negative increments are ignored to keep the
// counter monotonic.
func (c *BasicCounter) Add(n int64) {
	if n < 0 {
		return
	}
	c.v.Add(n)
}

// Value returns the current count.
func (c *BasicCounter) Value() int64 { return c.v.Load() }

// BasicUpDownCounter is an atomic bidirectional counter.
type BasicUpDownCounter struct {
	v atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.v.Add(n) }

// Value returns the current value.
func (u *BasicUpDownCounter) Value() int64 { return u.v.Load() }

// BasicHistogram accumulates count, sum, min, and max of recorded values.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	if v < h.min {
		h.min = v
	}
	if v > h.max {
		h.max = v
	}
}

// Snapshot returns the accumulated count, sum, min, and max.
func (h *BasicHistogram) Snapshot() (count int64, sum, min, max float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.sum, h.min, h.max
}
