package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/snapshot"
)

// Recorder persists runs and their day snapshots.
// Implemented by store.Store.
type Recorder interface {
	RecordRun(ctx context.Context, token, label string, itemCount int) error
	RecordSnapshot(ctx context.Context, token string, snap snapshot.Snapshot) error
}

// Run is the result of a simulation.
// Snapshots are in day order; the first one is the starting state.
type Run struct {
	Token     string
	Label     string
	Snapshots []snapshot.Snapshot
}

// Final returns the last snapshot of the run.
func (r *Run) Final() snapshot.Snapshot {
	if len(r.Snapshots) == 0 {
		return snapshot.Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}

// Days returns the number of simulated days in the run.
func (r *Run) Days() int {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return len(r.Snapshots) - 1
}

// Simulator advances inventories day by day.
//
// Thread-safety model:
//   - Simulate/Continue: safe to call concurrently; each call owns its items
//   - The Recorder must be safe for concurrent use if calls overlap
type Simulator struct {
	tokens   RunTokenGenerator
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRecorder sets the recorder that receives runs and snapshots.
// Without one, runs exist only in memory.
func WithRecorder(r Recorder) Option {
	return func(s *Simulator) {
		s.recorder = r
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = l
	}
}

// New creates a Simulator that names its runs with tokens.
func New(tokens RunTokenGenerator, opts ...Option) *Simulator {
	s := &Simulator{
		tokens: tokens,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate starts a new run from items and advances it the given number of days.
//
// The caller's slice is never modified. On cancellation the returned run
// holds the days completed so far together with ctx.Err().
func (s *Simulator) Simulate(ctx context.Context, label string, items []inventory.Item, days int) (*Run, error) {
	if days < 0 {
		return nil, NewInvalidDaysError(days)
	}

	token := s.tokens.Generate()
	run := &Run{Token: token, Label: label}

	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, token, label, len(items)); err != nil {
			return nil, NewRecordError(token, 0, err)
		}
	}

	work := make([]inventory.Item, len(items))
	copy(work, items)

	clock := NewClock()
	initial := snapshot.Capture(clock.Current(), work)
	if err := s.record(ctx, run, initial); err != nil {
		return nil, err
	}

	s.logger.Info("run started", "run", token, "label", label, "items", len(items), "days", days)
	return s.advance(ctx, run, work, clock, days)
}

// Continue advances an existing run from a previously recorded snapshot.
//
// The returned run starts with from and appends the new days. from itself
// is not recorded again.
func (s *Simulator) Continue(ctx context.Context, token, label string, from snapshot.Snapshot, days int) (*Run, error) {
	if days < 0 {
		return nil, NewInvalidDaysError(days)
	}

	run := &Run{Token: token, Label: label, Snapshots: []snapshot.Snapshot{from}}
	s.logger.Info("run continued", "run", token, "from_day", from.Day, "days", days)
	return s.advance(ctx, run, from.Restore(), NewClockAt(from.Day), days)
}

func (s *Simulator) advance(ctx context.Context, run *Run, work []inventory.Item, clock *Clock, days int) (*Run, error) {
	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			s.logger.Info("run interrupted", "run", run.Token, "day", clock.Current())
			return run, err
		}

		inventory.AdvanceOneDay(work)
		snap := snapshot.Capture(clock.Next(), work)
		if err := s.record(ctx, run, snap); err != nil {
			return run, err
		}
		s.logger.Debug("day advanced", "run", run.Token, "day", snap.Day)
	}

	s.logger.Info("run finished", "run", run.Token, "day", clock.Current())
	return run, nil
}

func (s *Simulator) record(ctx context.Context, run *Run, snap snapshot.Snapshot) error {
	if s.recorder != nil {
		if err := s.recorder.RecordSnapshot(ctx, run.Token, snap); err != nil {
			return NewRecordError(run.Token, snap.Day, err)
		}
	}
	run.Snapshots = append(run.Snapshots, snap)
	return nil
}
