// Package store provides SQLite-backed durable storage for simulation runs.
//
// The store is an append-only log with:
//   - Runs: one row per simulation, keyed by run token
//   - Snapshots: the state of every item on every recorded day
//   - Snapshot hashes: content-addressed identity of each day, used by replay
//
// # Ordering
//
// All queries order by day ASC, position ASC. Days come from the engine's
// logical clock, so results are identical across replays regardless of when
// the run was recorded.
//
// # Idempotency
//
// Writes use ON CONFLICT DO NOTHING. Recording the same day twice (for
// example when a run is continued from its last snapshot) is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Snapshots must belong to a recorded run
package store
