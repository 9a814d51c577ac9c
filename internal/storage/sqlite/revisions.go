package sqlite

import (
	"context"
	"fmt"
)

// Revisions lists saved snapshots, newest first.
func (s *Storage) Revisions(ctx context.Context) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, created_at, current_server, current_channel FROM snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: scan revision: %w", err)
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

// Prune deletes all but the newest keep revisions and returns how many
// were (or, with dryRun, would be) removed.
func (s *Storage) Prune(ctx context.Context, keep int, dryRun bool) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("sqlite storage: keep must be >= 1")
	}

	var cutoff int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT seq FROM snapshots ORDER BY seq DESC LIMIT 1 OFFSET ?), 0)`, keep-1).Scan(&cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: find prune cutoff: %w", err)
	}
	if cutoff == 0 {
		return 0, nil
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE seq < ?`, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count prunable revisions: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: begin prune: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM lines WHERE snapshot_seq < ?`,
		`DELETE FROM buffers WHERE snapshot_seq < ?`,
		`DELETE FROM servers WHERE snapshot_seq < ?`,
		`DELETE FROM snapshots WHERE seq < ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, cutoff); err != nil {
			return 0, fmt.Errorf("sqlite storage: prune: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite storage: commit prune: %w", err)
	}
	return count, nil
}
