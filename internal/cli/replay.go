package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunToken string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunToken      string `json:"run_token"`
	Label         string `json:"label,omitempty"`
	Items         int    `json:"items"`
	Days          int    `json:"days"`
	Deterministic bool   `json:"deterministic"`
	MismatchDay   *int64 `json:"mismatch_day,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-simulate recorded runs and verify determinism",
		Long: `Re-simulate recorded runs and verify they reproduce exactly.

Each run is restarted from its recorded day 0 and advanced through the same
number of days. Every replayed day must hash identically to the recorded
hash, and every recorded day's items must still match their own hash.

Exit codes:
  0 - All runs are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  gildedrose replay --db ./runs.db
  gildedrose replay --db ./runs.db --run 0190a1b2-...
  gildedrose replay --db ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	if cmd.Context() != nil {
		ctx = cmd.Context()
	}

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	// Get runs to process
	var runs []store.RunInfo
	if opts.RunToken != "" {
		info, err := st.GetRun(ctx, opts.RunToken)
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("%s: run %s", ErrCodeRunNotFound, opts.RunToken), err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		runs = []store.RunInfo{info}
	} else {
		runs, err = st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	if len(runs) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, ReplayResult{
				Runs:             []ReplayRunResult{},
				TotalRuns:        0,
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}

	logger := opts.newLogger(cmd.ErrOrStderr())
	sim := engine.New(engine.NewFixedGenerator(), engine.WithLogger(logger))

	for _, info := range runs {
		runResult, err := replayAndVerifyRun(ctx, st, sim, info)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", info.Token), err)
		}

		result.Runs = append(result.Runs, runResult)
		if !runResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}

	return outputReplayText(cmd, result, opts.Verbose)
}

// replayAndVerifyRun re-simulates a run from its recorded day 0 and compares
// every day's hash with the recorded one.
//
// The simulator has no recorder, so replay never writes to the store.
func replayAndVerifyRun(ctx context.Context, st *store.Store, sim *engine.Simulator, info store.RunInfo) (ReplayRunResult, error) {
	result := ReplayRunResult{
		RunToken:      info.Token,
		Label:         info.Label,
		Items:         info.ItemCount,
		Deterministic: true,
	}

	recorded, err := st.ReadSnapshots(ctx, info.Token)
	if err != nil {
		return result, err
	}
	hashes, err := st.ReadHashes(ctx, info.Token)
	if err != nil {
		return result, err
	}
	if len(recorded) == 0 {
		return mismatch(result, 0, "no recorded days"), nil
	}
	result.Days = len(recorded) - 1

	// Days must be contiguous from 0 for a straight re-simulation.
	for i, snap := range recorded {
		if snap.Day != int64(i) {
			return mismatch(result, int64(i), fmt.Sprintf("day %d missing from record", i)), nil
		}
	}

	replayed, err := sim.Continue(ctx, info.Token, info.Label, recorded[0], result.Days)
	if err != nil {
		return result, fmt.Errorf("re-simulate: %w", err)
	}

	for i, h := range hashes {
		storedHash, err := recorded[i].Hash()
		if err != nil {
			return result, err
		}
		if storedHash != h.Hash {
			return mismatch(result, h.Day, "recorded items do not match recorded hash"), nil
		}

		replayHash, err := replayed.Snapshots[i].Hash()
		if err != nil {
			return result, err
		}
		if replayHash != h.Hash {
			return mismatch(result, h.Day, "replayed day differs from recorded day"), nil
		}
	}

	return result, nil
}

func mismatch(r ReplayRunResult, day int64, reason string) ReplayRunResult {
	r.Deterministic = false
	r.MismatchDay = &day
	r.Reason = reason
	return r
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Run: %s\n", status, run.RunToken)

		if verbose {
			fmt.Fprintf(w, "  Label: %s\n", run.Label)
			fmt.Fprintf(w, "  Items: %d\n", run.Items)
			fmt.Fprintf(w, "  Days: %d\n", run.Days)
		} else {
			fmt.Fprintf(w, "  %d items over %d days\n", run.Items, run.Days)
		}

		if !run.Deterministic {
			fmt.Fprintf(w, "  Warning: %s (day %d)\n", run.Reason, *run.MismatchDay)
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	// Determinism failure = exit code 1
	return NewExitError(ExitFailure, "determinism verification failed")
}
