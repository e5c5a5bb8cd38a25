package parallel

// Overhead guard: decides whether adjacent units are merged into batches
// before dispatch, based on the estimated per-dispatch cost C supplied via
// WithDispatchOverhead.
//
// A unit whose cost/C ratio falls below the configured threshold is merged
// with its contiguous cheap neighbors (submission order preserved) until the
// aggregate batch cost reaches the target total_cost/(pool_size*factor).
// Units without a cost estimate are never merged: batching them risks
// unbounded imbalance, so they pass through as singleton batches.

// planBatches groups units into dispatch batches. With overhead <= 0
// (batching disabled) every unit becomes a singleton batch.
func planBatches[R any](units []unit[R], overhead, threshold, factor float64, poolSize int) []*batch[R] {
	if overhead <= 0 {
		return singletons(units)
	}

	var total float64
	for _, u := range units {
		if c, ok := u.task.Cost(); ok {
			total += c
		}
	}
	target := total / (float64(poolSize) * factor)

	batches := make([]*batch[R], 0, len(units))
	var cur *batch[R]
	flush := func() {
		if cur != nil {
			batches = append(batches, cur)
			cur = nil
		}
	}

	for _, u := range units {
		c, known := u.task.Cost()
		if !known || c/overhead >= threshold {
			flush()
			batches = append(batches, singleton(u))
			continue
		}
		if cur == nil {
			cur = &batch[R]{}
		}
		cur.add(u)
		if cur.cost >= target {
			flush()
		}
	}
	flush()
	return batches
}

func singletons[R any](units []unit[R]) []*batch[R] {
	batches := make([]*batch[R], len(units))
	for i, u := range units {
		batches[i] = singleton(u)
	}
	return batches
}
