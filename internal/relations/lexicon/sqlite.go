package lexicon

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codenames/apps/go-spymaster/internal/relations"
	"github.com/robalobadob/codenames/apps/go-spymaster/internal/sqlitedb"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a lexical graph stored in a relations table.
type SQLite struct {
	db     *sql.DB
	lookup *sql.Stmt
}

var _ relations.Discrete = (*SQLite)(nil)

// OpenSQLite opens the database at dsn, applies the lexicon schema and
// prepares the lookup statement. Any failure wraps relations.ErrUnavailable.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sqlitedb.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
	}

	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := sqlitedb.Migrate(ctx, db, sub); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
	}

	stmt, err := db.PrepareContext(ctx, `SELECT kind, related FROM relations WHERE stem=? ORDER BY kind, related`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: prepare lookup: %w", relations.ErrUnavailable, err)
	}
	return &SQLite{db: db, lookup: stmt}, nil
}

func (s *SQLite) Capability() relations.Capability { return relations.CapabilityDiscrete }

// Close releases the prepared statement and the database handle.
func (s *SQLite) Close() error {
	_ = s.lookup.Close()
	return s.db.Close()
}

// Import inserts rels in one transaction. Duplicate edges are ignored.
// It returns the number of edges actually added.
func (s *SQLite) Import(ctx context.Context, rels []Relation) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO relations (stem, kind, related) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var added int64
	for _, r := range rels {
		res, err := stmt.ExecContext(ctx, relations.Stem(r.Word), string(r.Kind), r.Related)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %s/%s/%s: %w", r.Word, r.Kind, r.Related, err)
		}
		n, _ := res.RowsAffected()
		added += n
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	log.Info().Int64("added", added).Int("read", len(rels)).Msg("lexicon import")
	return added, nil
}

// Expand looks up word's stem. Query failures wrap relations.ErrUnavailable.
func (s *SQLite) Expand(word string) (relations.RelationSet, error) {
	out := relations.NewRelationSet()

	rows, err := s.lookup.Query(relations.Stem(word))
	if err != nil {
		return out, fmt.Errorf("%w: lookup %q: %w", relations.ErrUnavailable, word, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, related string
		if err := rows.Scan(&kind, &related); err != nil {
			return out, fmt.Errorf("%w: scan: %w", relations.ErrUnavailable, err)
		}
		if g := out.Group(relations.Kind(kind)); g != nil {
			g.Add(related)
		}
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("%w: %w", relations.ErrUnavailable, err)
	}
	return out, nil
}

// Count is the number of stored edges.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relations`).Scan(&n)
	return n, err
}
