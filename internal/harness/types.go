package harness

import "github.com/roach88/gildedrose/internal/snapshot"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// RunToken identifies the simulated run.
	RunToken string `json:"run_token"`

	// Snapshots holds every recorded day, as read back from the store.
	Snapshots []snapshot.Snapshot `json:"snapshots"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:      true,
		Snapshots: []snapshot.Snapshot{},
		Errors:    []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Final returns the last recorded day, or the zero Snapshot if none.
func (r *Result) Final() snapshot.Snapshot {
	if len(r.Snapshots) == 0 {
		return snapshot.Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
