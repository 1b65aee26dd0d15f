package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/compiler"
	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/report"
	"github.com/roach88/gildedrose/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Days     int
	Database string
	Label    string

	// RunGenerator allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunGenerator engine.RunTokenGenerator
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Run      report.RunView     `json:"run"`
	Warnings []compiler.Warning `json:"warnings,omitempty"`
	Database string             `json:"database,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <inventory-file>",
		Short: "Simulate an inventory day by day",
		Long: `Simulate an inventory for a number of days and print every day.

The inventory file may be CUE (.cue) or YAML (.yaml, .yml). Day 0 is the
starting state; each following day applies the update rules exactly once.
With --db, the run and every day are recorded for replay and history.

Example:
  gildedrose run ./inventory.yaml
  gildedrose run ./inventory.cue --days 30 --db ./runs.db --label spring`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", rootOpts.Config.Days, "number of days to simulate")
	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database (optional)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "run label (defaults to the inventory label or file name)")

	return cmd
}

func runSimulation(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := opts.newLogger(cmd.ErrOrStderr())

	if opts.Days < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--days must be non-negative, got %d", opts.Days))
	}

	inv, err := LoadInventory(path)
	if err != nil {
		return loadExitError(err)
	}
	logger.Debug("inventory loaded", "path", path, "items", len(inv.Items))

	warnings := compiler.Inspect(inv.Items)
	for _, w := range warnings {
		logger.Warn("suspicious item", "code", w.Code, "position", w.Position, "name", w.Name, "detail", w.Message)
	}

	simOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.Database != "" {
		logger.Info("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		simOpts = append(simOpts, engine.WithRecorder(st))
	}

	tokens := opts.RunGenerator
	if tokens == nil {
		tokens = engine.UUIDv7Generator{}
	}
	sim := engine.New(tokens, simOpts...)

	ctx, stop := signalContext(cmd, logger)
	defer stop()

	run, simErr := sim.Simulate(ctx, runLabel(opts.Label, inv, path), inv.Items, opts.Days)
	if run == nil {
		return WrapExitError(ExitFailure, "simulation failed", simErr)
	}

	if err := outputRun(cmd, opts, run, warnings); err != nil {
		return err
	}

	if simErr != nil {
		if errors.Is(simErr, context.Canceled) {
			return WrapExitError(ExitFailure, fmt.Sprintf("simulation interrupted after day %d", run.Final().Day), simErr)
		}
		return WrapExitError(ExitFailure, "simulation failed", simErr)
	}
	return nil
}

// runLabel picks the run label: the flag, then the inventory's own label,
// then the file name without extension.
func runLabel(flag string, inv *compiler.Inventory, path string) string {
	if flag != "" {
		return flag
	}
	if inv.Label != "" {
		return inv.Label
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM or when the
// command's own context ends.
func signalContext(cmd *cobra.Command, logger *slog.Logger) (context.Context, func()) {
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// loadExitError maps an inventory load failure to an exit code.
func loadExitError(err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && !loadErr.IsCommandError() {
		return WrapExitError(ExitFailure, "invalid inventory", err)
	}
	return WrapExitError(ExitCommandError, "failed to load inventory", err)
}

// outputRun prints a run in the configured format.
func outputRun(cmd *cobra.Command, opts *RunOptions, run *engine.Run, warnings []compiler.Warning) error {
	w := cmd.OutOrStdout()

	if opts.Format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{
			Status: "ok",
			Data: RunOutput{
				Run:      report.NewRunView(run),
				Warnings: warnings,
				Database: opts.Database,
			},
		})
	}

	if err := report.WriteText(w, run.Snapshots); err != nil {
		return err
	}
	if opts.Database != "" {
		fmt.Fprintf(w, "Recorded run %s (%d days) in %s\n", run.Token, run.Days(), opts.Database)
	}
	return nil
}
