package store

import (
	"context"
	"database/sql"
	"fmt"
)

// deckRepo implements DeckRepo with plain SQL.
type deckRepo struct {
	db *sql.DB
}

func (r *deckRepo) AppendDeckBuild(ctx context.Context, data DeckBuildData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deck_builds
			(run_id, subject, requested, concepts, generated, skipped,
			 output_path, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.RunID, data.Subject, data.Requested, data.Concepts,
		data.Generated, data.Skipped, data.OutputPath, data.DurationMs, data.Error,
	)
	if err != nil {
		return fmt.Errorf("insert deck build: %w", err)
	}
	return nil
}

func (r *deckRepo) ListDeckBuilds(ctx context.Context, limit int) ([]DeckBuild, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, run_id, subject, requested, concepts,
		       generated, skipped, output_path, duration_ms, error
		FROM deck_builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query deck builds: %w", err)
	}
	defer rows.Close()

	var builds []DeckBuild
	for rows.Next() {
		var b DeckBuild
		if err := rows.Scan(&b.ID, &b.Timestamp, &b.RunID, &b.Subject,
			&b.Requested, &b.Concepts, &b.Generated, &b.Skipped,
			&b.OutputPath, &b.DurationMs, &b.Error); err != nil {
			return nil, fmt.Errorf("scan deck build: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
