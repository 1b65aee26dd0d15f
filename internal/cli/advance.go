package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/store"
)

// AdvanceOptions holds flags for the advance command.
type AdvanceOptions struct {
	*RootOptions
	Database string
	RunToken string
	Days     int
}

// NewAdvanceCommand creates the advance command.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdvanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Continue a recorded run for more days",
		Long: `Continue a recorded run from its last recorded day.

The last day is read back from the database, the update rules are applied
for the requested number of days, and every new day is recorded under the
same run token.

Examples:
  gildedrose advance --db ./runs.db --run 0190a1b2-... --days 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to continue (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().IntVar(&opts.Days, "days", 1, "number of days to add")

	return cmd
}

func runAdvance(opts *AdvanceOptions, cmd *cobra.Command) error {
	logger := opts.newLogger(cmd.ErrOrStderr())

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}
	if opts.Days < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--days must be non-negative, got %d", opts.Days))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx, stop := signalContext(cmd, logger)
	defer stop()

	info, err := st.GetRun(ctx, opts.RunToken)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: run %s", ErrCodeRunNotFound, opts.RunToken), err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	from, err := st.ReadDay(ctx, info.Token, info.LastDay)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read day %d", info.LastDay), err)
	}

	// Continue never generates a token; the generator only satisfies New.
	sim := engine.New(engine.NewFixedGenerator(), engine.WithRecorder(st), engine.WithLogger(logger))
	run, simErr := sim.Continue(ctx, info.Token, info.Label, from, opts.Days)

	runOpts := &RunOptions{RootOptions: opts.RootOptions, Database: opts.Database}
	if err := outputRun(cmd, runOpts, run, nil); err != nil {
		return err
	}

	if simErr != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: advance stopped after day %d", ErrCodeSimulation, run.Final().Day), simErr)
	}
	return nil
}
