package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/snapshot"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string               // Assertion type for categorization
	Expected string               // Human-readable expected outcome
	Actual   string               // Human-readable actual outcome
	History  []snapshot.ItemState // Per-day states of the item involved, if any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.History) > 0 {
		fmt.Fprintf(&buf, "\nItem history:\n")
		for day, st := range e.History {
			fmt.Fprintf(&buf, "  [day %d] %s, %d, %d\n", day, st.Name, st.SellIn, st.Quality)
		}
	}

	return buf.String()
}

// EvaluateAssertions evaluates all assertions against the recorded days.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(snaps []snapshot.Snapshot, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertItemState:
			err = assertItemState(snaps, assertion)
		case AssertFinalState:
			err = assertFinalState(snaps, assertion)
		case AssertUnchanged:
			err = assertUnchanged(snaps, assertion)
		case AssertQualityBounds:
			err = assertQualityBounds(snaps)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertItemState checks one item on one recorded day.
func assertItemState(snaps []snapshot.Snapshot, assertion Assertion) error {
	if assertion.Day == nil {
		return fmt.Errorf("item_state assertion requires a day")
	}
	for _, snap := range snaps {
		if snap.Day == *assertion.Day {
			return checkItem(AssertItemState, snaps, snap, assertion)
		}
	}
	return &AssertionError{
		Type:     AssertItemState,
		Expected: fmt.Sprintf("day %d to be recorded", *assertion.Day),
		Actual:   fmt.Sprintf("%d days recorded", len(snaps)),
	}
}

// assertFinalState checks one item on the last recorded day.
func assertFinalState(snaps []snapshot.Snapshot, assertion Assertion) error {
	if len(snaps) == 0 {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: "at least one recorded day",
			Actual:   "no days recorded",
		}
	}
	return checkItem(AssertFinalState, snaps, snaps[len(snaps)-1], assertion)
}

func checkItem(kind string, snaps []snapshot.Snapshot, snap snapshot.Snapshot, assertion Assertion) error {
	st, ok := snap.Find(assertion.Position)
	if !ok {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("item at position %d on day %d", assertion.Position, snap.Day),
			Actual:   "item not found",
		}
	}

	if assertion.SellIn != nil && st.SellIn != *assertion.SellIn {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("%q sell_in = %d on day %d", st.Name, *assertion.SellIn, snap.Day),
			Actual:   fmt.Sprintf("sell_in = %d", st.SellIn),
			History:  itemHistory(snaps, assertion.Position),
		}
	}

	if assertion.Quality != nil && st.Quality != *assertion.Quality {
		return &AssertionError{
			Type:     kind,
			Expected: fmt.Sprintf("%q quality = %d on day %d", st.Name, *assertion.Quality, snap.Day),
			Actual:   fmt.Sprintf("quality = %d", st.Quality),
			History:  itemHistory(snaps, assertion.Position),
		}
	}

	return nil
}

// assertUnchanged checks that an item is identical on every recorded day.
func assertUnchanged(snaps []snapshot.Snapshot, assertion Assertion) error {
	history := itemHistory(snaps, assertion.Position)
	if len(history) != len(snaps) {
		return &AssertionError{
			Type:     AssertUnchanged,
			Expected: fmt.Sprintf("item at position %d on every day", assertion.Position),
			Actual:   fmt.Sprintf("found on %d of %d days", len(history), len(snaps)),
		}
	}

	for day := 1; day < len(history); day++ {
		if history[day] != history[0] {
			return &AssertionError{
				Type:     AssertUnchanged,
				Expected: fmt.Sprintf("%q to stay %d, %d", history[0].Name, history[0].SellIn, history[0].Quality),
				Actual:   fmt.Sprintf("changed to %d, %d on day %d", history[day].SellIn, history[day].Quality, snaps[day].Day),
				History:  history,
			}
		}
	}

	return nil
}

// assertQualityBounds checks that no non-legendary item that starts inside
// [MinQuality, MaxQuality] ever leaves it. Items that start outside are
// skipped because the update rules never repair them.
func assertQualityBounds(snaps []snapshot.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	for _, start := range snaps[0].Items {
		if inventory.Classify(start.Name) == inventory.Legendary {
			continue
		}
		if start.Quality < inventory.MinQuality || start.Quality > inventory.MaxQuality {
			continue
		}
		for _, snap := range snaps[1:] {
			st, ok := snap.Find(start.Position)
			if !ok {
				continue
			}
			if st.Quality < inventory.MinQuality || st.Quality > inventory.MaxQuality {
				expected := fmt.Sprintf("%q quality within [%d, %d]",
					st.Name, inventory.MinQuality, inventory.MaxQuality)
				return &AssertionError{
					Type:     AssertQualityBounds,
					Expected: expected,
					Actual:   fmt.Sprintf("quality = %d on day %d", st.Quality, snap.Day),
					History:  itemHistory(snaps, start.Position),
				}
			}
		}
	}

	return nil
}

// itemHistory collects an item's state on every day it was recorded.
func itemHistory(snaps []snapshot.Snapshot, position int) []snapshot.ItemState {
	var history []snapshot.ItemState
	for _, snap := range snaps {
		if st, ok := snap.Find(position); ok {
			history = append(history, st)
		}
	}
	return history
}
