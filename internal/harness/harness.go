package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/snapshot"
	"github.com/roach88/gildedrose/internal/store"
	"github.com/roach88/gildedrose/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Simulate the scenario's inventory through the engine, recording every day
// 3. Read the recorded days back from the store
// 4. Evaluate assertions against the stored days
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	sim := engine.New(
		testutil.NewFixedRunGenerator(scenario.RunToken),
		engine.WithRecorder(st),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	run, err := sim.Simulate(ctx, scenario.Name, scenario.Inventory(), scenario.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate scenario %q: %w", scenario.Name, err)
	}

	snaps, err := st.ReadSnapshots(ctx, run.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to read recorded days: %w", err)
	}

	result := NewResult()
	result.RunToken = run.Token
	result.Snapshots = snaps

	if err := verifyRecorded(run, snaps); err != nil {
		result.AddError(err.Error())
	}

	for _, errMsg := range EvaluateAssertions(snaps, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// verifyRecorded checks that the store returned exactly what the engine
// produced, comparing snapshot hashes day by day.
func verifyRecorded(run *engine.Run, stored []snapshot.Snapshot) error {
	if len(stored) != len(run.Snapshots) {
		return fmt.Errorf("store holds %d days, engine produced %d", len(stored), len(run.Snapshots))
	}
	for i, snap := range run.Snapshots {
		want, err := snap.Hash()
		if err != nil {
			return fmt.Errorf("hash day %d: %w", snap.Day, err)
		}
		got, err := stored[i].Hash()
		if err != nil {
			return fmt.Errorf("hash stored day %d: %w", stored[i].Day, err)
		}
		if got != want {
			return fmt.Errorf("stored day %d differs from simulated day %d", stored[i].Day, snap.Day)
		}
	}
	return nil
}
