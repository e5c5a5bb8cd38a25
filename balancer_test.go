package parallel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// costedUnits builds units with the given costs; a negative cost means
// cost-unknown.
func costedUnits(costs ...float64) []unit[int] {
	units := make([]unit[int], len(costs))
	for i, c := range costs {
		t := TaskValue[int](func(context.Context) int { return 0 })
		if c >= 0 {
			t = t.WithCost(c)
		}
		units[i] = unit[int]{id: i, task: t}
	}
	return units
}

func batchIDs[R any](batches []*batch[R]) []int {
	var ids []int
	for _, b := range batches {
		ids = append(ids, b.memberIDs()...)
	}
	return ids
}

func TestOrderBatches_None_PreservesSubmissionOrder(t *testing.T) {
	batches := singletons(costedUnits(3, 1, 2, 5, 4))
	got := orderBatches(batches, None)
	require.Equal(t, []int{0, 1, 2, 3, 4}, batchIDs(got))
}

func TestOrderBatches_Randomize_Deterministic(t *testing.T) {
	units := costedUnits(make([]float64, 32)...)

	first := batchIDs(orderBatches(singletons(units), Randomize(7)))
	second := batchIDs(orderBatches(singletons(units), Randomize(7)))
	require.Equal(t, first, second, "same seed must produce the same permutation")

	other := batchIDs(orderBatches(singletons(units), Randomize(8)))
	require.NotEqual(t, first, other, "different seeds should produce different permutations")

	require.ElementsMatch(t, batchIDs(singletons(units)), first, "permutation must not lose units")
}

func TestOrderBatches_SortDescendingByCost(t *testing.T) {
	tests := []struct {
		name  string
		costs []float64
		want  []int
	}{
		{
			name:  "descending by cost",
			costs: []float64{1, 5, 3},
			want:  []int{1, 2, 0},
		},
		{
			name:  "ties keep submission order",
			costs: []float64{2, 5, 2, 5},
			want:  []int{1, 3, 0, 2},
		},
		{
			name:  "cost-unknown sorts last",
			costs: []float64{-1, 4, -1, 2},
			want:  []int{1, 3, 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderBatches(singletons(costedUnits(tt.costs...)), SortDescendingByCost)
			require.Equal(t, tt.want, batchIDs(got))
		})
	}
}

// contiguousMax computes the maximum group cost of a naive contiguous split
// of costs into n groups of near-equal count.
func contiguousMax(costs []float64, n int) float64 {
	q, r := len(costs)/n, len(costs)%n
	var max float64
	i := 0
	for g := 0; g < n; g++ {
		size := q
		if g < r {
			size++
		}
		var sum float64
		for k := 0; k < size; k++ {
			sum += costs[i]
			i++
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

func TestPartitionBatches_SortDescendingBeatsNaiveContiguous(t *testing.T) {
	costs := []float64{1, 1, 1, 1, 1, 1, 1, 1, 100, 1}
	const slots = 4

	batches := orderBatches(singletons(costedUnits(costs...)), SortDescendingByCost)
	parts := partitionBatches(batches, slots)
	require.Len(t, parts, slots)

	var maxLoad float64
	var heavySlot []*batch[int]
	for _, part := range parts {
		var load float64
		for _, b := range part {
			load += b.cost
			if b.cost == 100 {
				heavySlot = part
			}
		}
		if load > maxLoad {
			maxLoad = load
		}
	}

	// the cost-100 task occupies a slot alone
	require.Len(t, heavySlot, 1)
	require.Equal(t, []int{8}, heavySlot[0].memberIDs())

	require.Less(t, maxLoad, contiguousMax(costs, slots),
		"LPT max per-slot load must beat naive contiguous partitioning")
}

func TestPartitionBatches_UnknownCostsBalanceByCount(t *testing.T) {
	units := costedUnits(-1, -1, -1, -1, -1, -1, -1, -1)
	parts := partitionBatches(singletons(units), 4)
	for i, part := range parts {
		require.Len(t, part, 2, "slot %d", i)
	}
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7},
		append(append(append(batchIDs(parts[0]), batchIDs(parts[1])...), batchIDs(parts[2])...), batchIDs(parts[3])...))
}
