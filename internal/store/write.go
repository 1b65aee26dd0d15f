package store

import (
	"context"
	"fmt"

	"github.com/roach88/gildedrose/internal/snapshot"
)

// RecordRun inserts a run record.
// Uses ON CONFLICT(token) DO NOTHING - recording the same token twice keeps
// the first row.
func (s *Store) RecordRun(ctx context.Context, token, label string, itemCount int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (token, label, item_count, last_day, created_seq)
		VALUES (?, ?, ?, 0, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM runs))
		ON CONFLICT(token) DO NOTHING
	`, token, label, itemCount)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordSnapshot writes every item of a day snapshot, its hash, and advances
// the run's last_day, all in one transaction.
//
// The run must already exist (foreign key constraint). Writing a day that is
// already stored is silently ignored.
func (s *Store) RecordSnapshot(ctx context.Context, token string, snap snapshot.Snapshot) error {
	hash, err := snap.Hash()
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_hashes (run_token, day, hash)
		VALUES (?, ?, ?)
		ON CONFLICT(run_token, day) DO NOTHING
	`, token, snap.Day, hash)
	if err != nil {
		return fmt.Errorf("record snapshot: insert hash: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Day already recorded.
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots (run_token, day, position, name, sell_in, quality)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, day, position) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("record snapshot: prepare: %w", err)
	}
	defer stmt.Close()

	for _, it := range snap.Items {
		if _, err := stmt.ExecContext(ctx, token, snap.Day, it.Position, it.Name, it.SellIn, it.Quality); err != nil {
			return fmt.Errorf("record snapshot: insert item %d: %w", it.Position, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE runs SET last_day = MAX(last_day, ?) WHERE token = ?
	`, snap.Day, token); err != nil {
		return fmt.Errorf("record snapshot: update run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record snapshot: commit: %w", err)
	}
	return nil
}
