package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/mosegui/lookout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableExists reports whether a table is present in the SQLite schema.
func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestMigrateAnalysisSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	// Up to latest on a fresh database.
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.True(t, tableExists(t, dbPath, entriesTable))

	// Running again is a no-op, not an error.
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Roll back to the initial state.
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, runsTable))
	assert.False(t, tableExists(t, dbPath, entriesTable))
}

func TestMigrateAnalysisToVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")

	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, runsTable))
}

func TestMigrateAnalysisNoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "not supported")
}

func TestClearCacheSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stale"), 0o644))

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	// Clearing an already absent file succeeds.
	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
}

func TestClearCacheValidation(t *testing.T) {
	assert.ErrorContains(t, ClearCache(schema.SQLiteBackend, "", ""), "cannot be empty")
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), "", ""))
}

func TestClearAnalysisSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stale"), 0o644))

	require.NoError(t, ClearAnalysis(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	assert.ErrorContains(t, ClearAnalysis(schema.SQLiteBackend, "", ""), "cannot be empty")
	assert.NoError(t, ClearAnalysis(schema.NoneBackend, "", ""))
}
