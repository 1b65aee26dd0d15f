package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	RunToken string
	Item     string // optional - filter to items with this exact name
}

// DayState is one item's state on one day.
type DayState struct {
	Day     int64 `json:"day"`
	SellIn  int   `json:"sell_in"`
	Quality int   `json:"quality"`
}

// ItemTimeline is the day-by-day history of one inventory position.
type ItemTimeline struct {
	Position int        `json:"position"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Days     []DayState `json:"days"`
}

// HistoryResult holds the complete history output.
type HistoryResult struct {
	RunToken string         `json:"run_token"`
	Label    string         `json:"label,omitempty"`
	LastDay  int64          `json:"last_day"`
	Items    []ItemTimeline `json:"items"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-day item state of a recorded run",
		Long: `Show how each item of a recorded run changed day by day.

Items are listed in inventory order. With --item, only items whose name
matches exactly are shown; duplicates of the same name are listed
separately by position.

Examples:
  gildedrose history --db ./runs.db --run 0190a1b2-...
  gildedrose history --db ./runs.db --run 0190a1b2-... --item "Aged Brie"
  gildedrose history --db ./runs.db --run 0190a1b2-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.Database, "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVar(&opts.Item, "item", "", "filter to items with this exact name")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	info, err := st.GetRun(ctx, opts.RunToken)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: run %s", ErrCodeRunNotFound, opts.RunToken), err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	entries, err := st.ItemHistory(ctx, info.Token, opts.Item)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read item history", err)
	}

	result := HistoryResult{
		RunToken: info.Token,
		Label:    info.Label,
		LastDay:  info.LastDay,
		Items:    buildTimelines(entries),
	}

	if opts.Format == "json" {
		return outputHistoryJSON(cmd, result)
	}

	return outputHistoryText(cmd, result, opts.Item)
}

// buildTimelines groups history entries by position.
// Entries arrive ordered by position, then day.
func buildTimelines(entries []store.HistoryEntry) []ItemTimeline {
	timelines := []ItemTimeline{}

	for _, e := range entries {
		n := len(timelines)
		if n == 0 || timelines[n-1].Position != e.Position {
			timelines = append(timelines, ItemTimeline{
				Position: e.Position,
				Name:     e.Name,
				Category: inventory.Classify(e.Name).String(),
				Days:     []DayState{},
			})
			n++
		}
		timelines[n-1].Days = append(timelines[n-1].Days, DayState{
			Day:     e.Day,
			SellIn:  e.SellIn,
			Quality: e.Quality,
		})
	}

	return timelines
}

// outputHistoryJSON outputs the history result as JSON.
func outputHistoryJSON(cmd *cobra.Command, result HistoryResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputHistoryText outputs the history result as text.
func outputHistoryText(cmd *cobra.Command, result HistoryResult, itemFilter string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "History for Run: %s\n", result.RunToken)
	if result.Label != "" {
		fmt.Fprintf(w, "Label: %s\n", result.Label)
	}
	fmt.Fprintf(w, "Days: 0..%d\n", result.LastDay)
	fmt.Fprintln(w)

	if len(result.Items) == 0 {
		if itemFilter != "" {
			fmt.Fprintf(w, "No items named %q\n", itemFilter)
		} else {
			fmt.Fprintln(w, "  (no items)")
		}
		return nil
	}

	for _, item := range result.Items {
		formatTimeline(w, item)
	}
	return nil
}

func formatTimeline(w io.Writer, item ItemTimeline) {
	fmt.Fprintf(w, "=== [%d] %s (%s) ===\n", item.Position, item.Name, item.Category)
	for _, d := range item.Days {
		fmt.Fprintf(w, "  day %d: sellIn %d, quality %d\n", d.Day, d.SellIn, d.Quality)
	}
	fmt.Fprintln(w)
}
