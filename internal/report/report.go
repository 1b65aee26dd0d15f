// Package report renders simulation runs for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/gildedrose/internal/engine"
	"github.com/roach88/gildedrose/internal/snapshot"
)

// Header is the column line printed under each day heading.
const Header = "name, sellIn, quality"

// WriteText writes the daily inventory listing:
//
//	-------- day 0 --------
//	name, sellIn, quality
//	Aged Brie, 2, 0
//	<blank line>
func WriteText(w io.Writer, snaps []snapshot.Snapshot) error {
	for _, snap := range snaps {
		if err := WriteDay(w, snap); err != nil {
			return err
		}
	}
	return nil
}

// WriteDay writes a single day block.
func WriteDay(w io.Writer, snap snapshot.Snapshot) error {
	if _, err := fmt.Fprintf(w, "-------- day %d --------\n%s\n", snap.Day, Header); err != nil {
		return err
	}
	for _, it := range snap.Items {
		if _, err := fmt.Fprintf(w, "%s, %d, %d\n", it.Name, it.SellIn, it.Quality); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RunView is the JSON shape of a run.
type RunView struct {
	Token string              `json:"token"`
	Label string              `json:"label,omitempty"`
	Days  []snapshot.Snapshot `json:"days"`
}

// NewRunView builds the JSON view of a run.
func NewRunView(run *engine.Run) RunView {
	days := run.Snapshots
	if days == nil {
		days = []snapshot.Snapshot{}
	}
	return RunView{Token: run.Token, Label: run.Label, Days: days}
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, run *engine.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewRunView(run))
}
