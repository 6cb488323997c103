package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(Memory)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "freecell.db")
	db, err := OpenMigrated(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}

func TestUsernameUniqueIgnoresCase(t *testing.T) {
	db, err := OpenMigrated(Memory)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES ('a','Alice','x','now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES ('b','alice','x','now')`)
	assert.Error(t, err)
}
