// Package harness runs inventory scenarios as executable contract tests.
//
// A scenario names a starting inventory, a number of days, and a list of
// assertions about the recorded day states. Each scenario is simulated by
// the real engine into a fresh in-memory store, and assertions are evaluated
// against the snapshots read back from that store.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: brie_past_date
//	description: "Aged Brie gains twice as fast once its date has passed"
//	days: 3
//	items:
//	  - name: Aged Brie
//	    sell_in: 1
//	    quality: 0
//	assertions:
//	  - type: item_state
//	    day: 2
//	    position: 0
//	    quality: 3
//	  - type: final_state
//	    position: 0
//	    sell_in: -2
//	    quality: 5
//	  - type: quality_bounds
//
// Unknown fields are rejected so that typos fail loudly.
//
// # Assertion Types
//
//   - item_state: the item at position has the given sell_in and/or quality on day
//   - final_state: same as item_state, on the last recorded day
//   - unchanged: the item at position is identical on every recorded day
//   - quality_bounds: no non-legendary item leaves [0, 50] once inside it
//
// # Deterministic Testing
//
// Every scenario runs with a fixed run token (scenario.run_token, or
// testutil.DefaultRunToken) and a logical day clock, so the rendered report
// is byte-stable and can be compared against golden files.
package harness
