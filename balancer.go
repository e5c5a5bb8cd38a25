package parallel

import (
	"math/rand"
	"sort"
)

// Load balancer: pure, deterministic reordering and partitioning of dispatch
// units. It operates on whatever granularity it is given (raw tasks already
// wrapped as singleton batches, or guard-produced batches) without
// distinguishing them.

// orderBatches returns the batches in the order prescribed by the policy.
// The input slice is not mutated.
func orderBatches[R any](batches []*batch[R], b Balancer) []*batch[R] {
	switch b.kind {
	case balancerRandomize:
		out := append([]*batch[R](nil), batches...)
		rng := rand.New(rand.NewSource(b.seed))
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out

	case balancerSortDesc:
		out := append([]*batch[R](nil), batches...)
		// Stable: ties keep submission order.
		sort.SliceStable(out, func(i, j int) bool { return out[i].sortCost() > out[j].sortCost() })
		return out

	default:
		return batches
	}
}

// partitionBatches assigns batches to n slots by greedy least-loaded
// placement in the given order. Fed a cost-descending order this is the
// longest-processing-time heuristic; fed submission order with unknown costs
// it degrades to count balancing (every unknown batch weighs 1).
func partitionBatches[R any](batches []*batch[R], n int) [][]*batch[R] {
	parts := make([][]*batch[R], n)
	loads := make([]float64, n)
	for _, b := range batches {
		min := 0
		for i := 1; i < n; i++ {
			if loads[i] < loads[min] {
				min = i
			}
		}
		parts[min] = append(parts[min], b)
		loads[min] += b.weight()
	}
	return parts
}
