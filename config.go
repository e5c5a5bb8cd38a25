package parallel

import (
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/parallel/metrics"
)

// Strategy selects how a job's units are distributed over the pool.
type Strategy int

const (
	// DynamicQueue places units into a single shared FIFO from which idle
	// slots pull. Appropriate when costs are unknown or highly variable.
	DynamicQueue Strategy = iota
	// StaticPool partitions units once, up front, one group per slot, with
	// no further coordination. Appropriate when costs are known and workers
	// are interchangeable.
	StaticPool
)

// FailurePolicy governs job behavior on task failure.
type FailurePolicy int

const (
	// CollectAll runs every task to completion regardless of individual
	// failures; the JobResult contains an entry for every task.
	CollectAll FailurePolicy = iota
	// FailFast cancels all not-yet-dispatched units on the first failure;
	// entries for never-run tasks are absent.
	FailFast
)

type balancerKind int

const (
	balancerNone balancerKind = iota
	balancerRandomize
	balancerSortDesc
)

// Balancer is a deterministic reordering policy applied to dispatch units
// before partitioning or enqueuing. It is pure: given the same policy, seed,
// and input, the resulting order is always identical.
type Balancer struct {
	kind balancerKind
	seed int64
}

// None preserves submission order.
var None = Balancer{kind: balancerNone}

// SortDescendingByCost orders units by estimated cost descending, ties broken
// by submission index. Under StaticPool this implements the
// longest-processing-time heuristic, minimizing the maximum per-slot finish
// time. Units without a cost estimate sort last.
var SortDescendingByCost = Balancer{kind: balancerSortDesc}

// Randomize shuffles unit order with a seed-derived deterministic
// permutation, defending against systematic correlation between submission
// order and cost.
func Randomize(seed int64) Balancer {
	return Balancer{kind: balancerRandomize, seed: seed}
}

// config holds job configuration assembled from options.
type config struct {
	// PoolSize caps the number of worker slots. Zero (default) means the
	// hardware parallelism; the effective size is always clamped to it.
	PoolSize uint

	Strategy      Strategy
	Balancer      Balancer
	FailurePolicy FailurePolicy

	// DispatchOverhead is the estimated cost C of dispatching one unit,
	// on the same relative scale as task costs. Zero (default) disables
	// batching entirely.
	DispatchOverhead float64

	// OverheadThreshold: a unit whose cost/C ratio falls below it is a
	// candidate for merging with its neighbors.
	OverheadThreshold float64

	// BatchingFactor controls the batch cost target,
	// total_cost / (pool_size * BatchingFactor).
	BatchingFactor float64

	// QueueCapacity bounds the shared FIFO of the DynamicQueue strategy.
	// Zero (default) means unbounded. Exceeding capacity suspends the
	// enqueuer (back-pressure), unless SubmitTimeout is set.
	QueueCapacity uint

	// SubmitTimeout bounds how long an enqueue may wait at capacity before
	// the unit is failed with ErrQueueCapacityExceeded. Zero blocks.
	SubmitTimeout time.Duration

	// PinSlots pins each slot's OS thread to a logical CPU (best effort;
	// no-op on unsupported platforms).
	PinSlots bool

	Metrics metrics.Provider
}

// Option configures a job at submission. Options return an error on invalid
// input instead of panicking.
type Option func(*config) error

// WithPoolSize caps the worker pool at n slots (must be > 0). The effective
// size is min(n, hardware parallelism).
func WithPoolSize(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPoolSize requires n > 0"))
		}
		cfg.PoolSize = n
		return nil
	}
}

// WithStrategy selects the distribution strategy.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if s != StaticPool && s != DynamicQueue {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithStrategy requires StaticPool or DynamicQueue"))
		}
		cfg.Strategy = s
		return nil
	}
}

// WithBalancer selects the unit ordering policy applied before dispatch.
func WithBalancer(b Balancer) Option {
	return func(cfg *config) error { cfg.Balancer = b; return nil }
}

// WithFailurePolicy selects behavior on task failure (default CollectAll).
func WithFailurePolicy(p FailurePolicy) Option {
	return func(cfg *config) error {
		if p != CollectAll && p != FailFast {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithFailurePolicy requires CollectAll or FailFast"))
		}
		cfg.FailurePolicy = p
		return nil
	}
}

// WithDispatchOverhead sets the estimated per-dispatch cost C and thereby
// enables batching of cheap adjacent units (must be > 0).
func WithDispatchOverhead(c float64) Option {
	return func(cfg *config) error {
		if c <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithDispatchOverhead requires c > 0"))
		}
		cfg.DispatchOverhead = c
		return nil
	}
}

// WithOverheadThreshold sets the cost/C ratio below which units are merged
// (must be > 0; default 4).
func WithOverheadThreshold(t float64) Option {
	return func(cfg *config) error {
		if t <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithOverheadThreshold requires t > 0"))
		}
		cfg.OverheadThreshold = t
		return nil
	}
}

// WithBatchingFactor sets the batch target divisor (must be > 0; default 4).
func WithBatchingFactor(f float64) Option {
	return func(cfg *config) error {
		if f <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithBatchingFactor requires f > 0"))
		}
		cfg.BatchingFactor = f
		return nil
	}
}

// WithQueueCapacity bounds the shared FIFO used by DynamicQueue. Zero means
// unbounded.
func WithQueueCapacity(n uint) Option {
	return func(cfg *config) error { cfg.QueueCapacity = n; return nil }
}

// WithSubmitTimeout bounds the time an enqueue may spend waiting for queue
// capacity before failing the unit with ErrQueueCapacityExceeded.
func WithSubmitTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithSubmitTimeout requires d >= 0"))
		}
		cfg.SubmitTimeout = d
		return nil
	}
}

// WithPinnedSlots pins each worker slot's OS thread to a logical CPU.
// Pinning is best effort and silently unavailable on unsupported platforms.
func WithPinnedSlots() Option {
	return func(cfg *config) error { cfg.PinSlots = true; return nil }
}

// WithMetrics sets the metrics provider used to record scheduler instruments.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

func buildConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
