package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gildedrose/internal/snapshot"
)

// RunInfo describes a recorded run.
type RunInfo struct {
	Token     string `json:"token"`
	Label     string `json:"label"`
	ItemCount int    `json:"item_count"`
	LastDay   int64  `json:"last_day"`
}

// DayHash is the recorded hash of one day of a run.
type DayHash struct {
	Day  int64  `json:"day"`
	Hash string `json:"hash"`
}

// HistoryEntry is the state of one item on one day.
type HistoryEntry struct {
	Day      int64  `json:"day"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	SellIn   int    `json:"sell_in"`
	Quality  int    `json:"quality"`
}

// ListRuns returns every recorded run in creation order.
// Returns an empty slice (not nil) if the store has no runs.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, label, item_count, last_day
		FROM runs
		ORDER BY created_seq ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunInfo{}
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.Token, &r.Label, &r.ItemCount, &r.LastDay); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a single run.
// Returns ErrRunNotFound if the token is unknown.
func (s *Store) GetRun(ctx context.Context, token string) (RunInfo, error) {
	var r RunInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT token, label, item_count, last_day
		FROM runs
		WHERE token = ?
	`, token).Scan(&r.Token, &r.Label, &r.ItemCount, &r.LastDay)
	if errors.Is(err, sql.ErrNoRows) {
		return RunInfo{}, fmt.Errorf("%w: %s", ErrRunNotFound, token)
	}
	if err != nil {
		return RunInfo{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ReadSnapshots returns every recorded day of a run, in day order.
// Days with no items are returned with an empty item list.
func (s *Store) ReadSnapshots(ctx context.Context, token string) ([]snapshot.Snapshot, error) {
	if _, err := s.GetRun(ctx, token); err != nil {
		return nil, err
	}

	hashes, err := s.ReadHashes(ctx, token)
	if err != nil {
		return nil, err
	}

	snaps := make([]snapshot.Snapshot, len(hashes))
	index := make(map[int64]int, len(hashes))
	for i, h := range hashes {
		snaps[i] = snapshot.Snapshot{Day: h.Day, Items: []snapshot.ItemState{}}
		index[h.Day] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT day, position, name, sell_in, quality
		FROM snapshots
		WHERE run_token = ?
		ORDER BY day ASC, position ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int64
		var st snapshot.ItemState
		if err := rows.Scan(&day, &st.Position, &st.Name, &st.SellIn, &st.Quality); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		i, ok := index[day]
		if !ok {
			return nil, fmt.Errorf("snapshot day %d of run %s has no hash", day, token)
		}
		snaps[i].Items = append(snaps[i].Items, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snaps, nil
}

// ReadDay returns the snapshot of a single day.
// Returns ErrSnapshotNotFound if the day was never recorded.
func (s *Store) ReadDay(ctx context.Context, token string, day int64) (snapshot.Snapshot, error) {
	snaps, err := s.ReadSnapshots(ctx, token)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	for _, snap := range snaps {
		if snap.Day == day {
			return snap, nil
		}
	}
	return snapshot.Snapshot{}, fmt.Errorf("%w: run %s day %d", ErrSnapshotNotFound, token, day)
}

// ReadHashes returns the recorded snapshot hashes of a run, in day order.
func (s *Store) ReadHashes(ctx context.Context, token string) ([]DayHash, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, hash
		FROM snapshot_hashes
		WHERE run_token = ?
		ORDER BY day ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query hashes: %w", err)
	}
	defer rows.Close()

	hashes := []DayHash{}
	for rows.Next() {
		var h DayHash
		if err := rows.Scan(&h.Day, &h.Hash); err != nil {
			return nil, fmt.Errorf("scan hash: %w", err)
		}
		hashes = append(hashes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hashes: %w", err)
	}
	return hashes, nil
}

// ItemHistory returns the per-day state of every item with the given name.
// An empty name returns the history of all items.
func (s *Store) ItemHistory(ctx context.Context, token, name string) ([]HistoryEntry, error) {
	if _, err := s.GetRun(ctx, token); err != nil {
		return nil, err
	}

	query := `
		SELECT day, position, name, sell_in, quality
		FROM snapshots
		WHERE run_token = ?`
	args := []any{token}
	if name != "" {
		query += ` AND name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY position ASC, day ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Day, &e.Position, &e.Name, &e.SellIn, &e.Quality); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
