package sqlitedb

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := t.Context()

	// Given: a fresh database file in a nested directory
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrations := fstest.MapFS{
		"test_002_seed.sql":   {Data: []byte(`INSERT INTO things(name) VALUES ('a');`)},
		"test_001_schema.sql": {Data: []byte(`CREATE TABLE things (name TEXT);`)},
		"README.md":           {Data: []byte(`ignored`)},
	}

	// When: migrations are applied twice
	require.NoError(t, Migrate(ctx, db, migrations))
	require.NoError(t, Migrate(ctx, db, migrations))

	// Then: each file ran exactly once, in name order
	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM things`).Scan(&rows))
	assert.Equal(t, 1, rows)

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	ctx := t.Context()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = Migrate(ctx, db, fstest.MapFS{
		"bad_001.sql": {Data: []byte(`CREATE TABLE oops (`)},
	})
	require.Error(t, err)

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 0, applied)
}
