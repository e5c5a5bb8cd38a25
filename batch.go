package parallel

// batch is one dispatch unit: one or more tasks merged to amortize
// per-dispatch overhead. Member units are contiguous in submission order and
// are never split across two slots; their ids double as the demultiplexing
// key for batch outcomes.
type batch[R any] struct {
	units   []unit[R]
	cost    float64
	hasCost bool
}

func singleton[R any](u unit[R]) *batch[R] {
	b := &batch[R]{units: []unit[R]{u}}
	if c, ok := u.task.Cost(); ok {
		b.cost, b.hasCost = c, true
	}
	return b
}

func (b *batch[R]) add(u unit[R]) {
	b.units = append(b.units, u)
	if c, ok := u.task.Cost(); ok {
		b.cost += c
		b.hasCost = true
	}
}

func (b *batch[R]) size() int { return len(b.units) }

// sortCost is the key used by SortDescendingByCost; cost-unknown batches
// sort last.
func (b *batch[R]) sortCost() float64 {
	if !b.hasCost {
		return 0
	}
	return b.cost
}

// weight is the load accounted to a slot by the static partitioner.
// A cost-unknown batch counts as one unit of load, so partitions of unknown
// work balance by count.
func (b *batch[R]) weight() float64 {
	if !b.hasCost {
		return 1
	}
	return b.cost
}

func (b *batch[R]) memberIDs() []int {
	ids := make([]int, len(b.units))
	for i, u := range b.units {
		ids[i] = u.id
	}
	return ids
}
