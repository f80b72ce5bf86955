package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/sqlitedb"
)

//go:embed sql/*.sql
var migrations embed.FS

type SQLite struct{ db *sql.DB }

// OpenSQLite opens dsn and applies the evaluations schema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sqlitedb.Open(dsn)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqlitedb.Migrate(ctx, db, sub); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, r Result) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO evaluations(run_id, backend, team, seed, clues, score, total_possible, created_at)
		VALUES(?,?,?,?,?,?,?,?)`,
		r.RunID, r.Backend, r.Team, int64(r.Seed), r.Clues, r.Score, r.TotalPossible, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (s *SQLite) Leaderboard(ctx context.Context, backend string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, backend, team, seed, clues, score, total_possible, created_at
		FROM evaluations
		WHERE backend=? AND total_possible > 0
		ORDER BY CAST(score AS REAL) / total_possible DESC, created_at ASC, id ASC
		LIMIT ?`, backend, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r    Result
			seed int64
		)
		if err := rows.Scan(&r.RunID, &r.Backend, &r.Team, &seed, &r.Clues, &r.Score, &r.TotalPossible, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		out = append(out, r)
	}
	return out, rows.Err()
}
