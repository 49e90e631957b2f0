package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteAnalysisStore opens an analysis store backed by a throwaway SQLite file.
func newSQLiteAnalysisStore(t *testing.T) contract.AnalysisStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "analysis.db")
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAnalysisStoreRunLifecycle(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	started := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(started, map[string]any{"workers": 4, "extension": ".py"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	entries := []schema.RefactoringEntry{
		{Path: "/repo/a.py", Complexity: schema.DefinedMetric(2.5), Churn: 4, Score: schema.DefinedMetric(10.0)},
		{Path: "/repo/b.py", Complexity: schema.UndefinedMetric(), Churn: 1, Score: schema.UndefinedMetric()},
	}
	for i, e := range entries {
		require.NoError(t, store.RecordEntry(runID, i+1, e))
	}

	require.NoError(t, store.EndRun(runID, time.Now(), len(entries)))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, int32(2), runs[0].TotalFiles)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.GreaterOrEqual(t, *runs[0].RunDurationMs, int32(2000))
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, `"workers":4`)

	stored, err := store.GetAllEntries()
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, runID, stored[0].RunID)
	assert.Equal(t, int32(1), stored[0].Rank)
	assert.Equal(t, "/repo/a.py", stored[0].FilePath)
	assert.Equal(t, int32(4), stored[0].Churn)
	require.NotNil(t, stored[0].Score)
	assert.Equal(t, 10.0, *stored[0].Score)

	// Undefined metrics persist as SQL NULL.
	assert.Nil(t, stored[1].Complexity)
	assert.Nil(t, stored[1].Score)
}

func TestAnalysisStoreStatus(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)

	first, err := store.BeginRun(time.Now().Add(-time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(first, time.Now().Add(-59*time.Minute), 3))

	second, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(second, time.Now(), 5))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, int64(8), status.TotalFiles)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(0), status.TableSizes[entriesTable])
}

func TestAnalysisStoreMultipleRuns(t *testing.T) {
	store := newSQLiteAnalysisStore(t)

	first, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	// Auto-increment IDs keep runs distinct.
	assert.NotEqual(t, first, second)

	entry := schema.RefactoringEntry{Path: "/repo/a.py", Complexity: schema.DefinedMetric(1.0), Churn: 1, Score: schema.DefinedMetric(1.0)}
	require.NoError(t, store.RecordEntry(first, 1, entry))
	require.NoError(t, store.RecordEntry(second, 1, entry))

	stored, err := store.GetAllEntries()
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestAnalysisStoreNoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	require.NoError(t, store.RecordEntry(runID, 1, schema.RefactoringEntry{Path: "a.py"}))
	require.NoError(t, store.EndRun(runID, time.Now(), 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewAnalysisStoreUnknownBackend(t *testing.T) {
	_, err := NewAnalysisStore(schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}
