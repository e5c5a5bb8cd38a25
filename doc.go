// Package parallel distributes collections of independent tasks across a
// bounded pool of parallel worker slots.
//
// A job is submitted with Submit (or SubmitChan for lazily produced task
// sequences) together with functional options and returns a JobHandle. The
// handle blocks in Wait until the job reaches a terminal state and yields a
// JobResult ordered by task submission index, regardless of completion order.
//
// Strategies
//   - DynamicQueue (default): tasks are placed into a single shared FIFO and
//     idle slots pull the next unit. Near-optimal load balancing at a small
//     per-unit coordination cost; the right choice when task costs are
//     unknown or highly variable.
//   - StaticPool: tasks are partitioned once, up front, one group per slot,
//     with no further coordination. Minimal overhead, but sensitive to
//     partition imbalance; use it when costs are known and reliable.
//
// Balancing and batching
// Before dispatch, cheap adjacent tasks can be merged into batches to
// amortize per-dispatch overhead (WithDispatchOverhead enables this), and the
// resulting units can be reordered by a balancer policy: None, Randomize
// (seeded, deterministic), or SortDescendingByCost (largest units first, the
// longest-processing-time heuristic under StaticPool).
//
// Failure handling
// Task failures are contained in per-task Results and never crash the
// scheduler. CollectAll (default) runs everything and reports each outcome;
// FailFast cancels not-yet-dispatched units on the first failure. Only a pool
// startup failure surfaces as an error from Submit itself.
//
// Worker slots are goroutines bound to their own OS threads, so compute-bound
// tasks overlap across cores. All coordination happens via channels owned by
// the scheduler and pool; task payloads are the only shared (read-only) data.
package parallel
