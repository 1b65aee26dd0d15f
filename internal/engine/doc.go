// Package engine drives the daily update loop around package inventory.
//
// A Simulator takes an inventory, advances it one day at a time with
// inventory.AdvanceOneDay, and captures a snapshot after every day. Day 0 is
// the initial state. Snapshots are handed to an optional Recorder (the SQLite
// store in production) as they are produced.
//
// ARCHITECTURE:
//
// Single-Writer Loop:
// Each run is simulated on one goroutine. The caller's slice is copied before
// the first day so the simulator holds exclusive access to the items it
// mutates. Distinct runs share no mutable state and may run in parallel.
//
// Logical Clock:
// Days are numbered by a Clock, never by wall time. Continue resumes a run
// from its last recorded day with NewClockAt.
//
// Run Tokens:
// Every run is identified by a token from a RunTokenGenerator. Production
// uses UUIDv7 (time-sortable); tests use FixedGenerator for golden output.
package engine
