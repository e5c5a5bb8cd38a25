package parallel

import "github.com/ygrebnov/parallel/metrics"

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		PoolSize:          0, // hardware parallelism
		Strategy:          DynamicQueue,
		Balancer:          None,
		FailurePolicy:     CollectAll,
		DispatchOverhead:  0, // batching disabled until an overhead is supplied
		OverheadThreshold: 4,
		BatchingFactor:    4,
		QueueCapacity:     0, // unbounded
		SubmitTimeout:     0, // block on capacity
		PinSlots:          false,
		Metrics:           metrics.NewNoopProvider(),
	}
}
