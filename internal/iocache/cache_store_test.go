package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mosegui/lookout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteCacheStore opens a cache store backed by a throwaway SQLite file.
func newSQLiteCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("complexity_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreRoundTrip(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("complexity:abc:a.py", []byte(`[{"Name":"f"}]`), 1, 1700000000))

	value, version, ts, err := store.Get("complexity:abc:a.py")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"Name":"f"}]`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1700000000), ts)
}

func TestCacheStoreOverwrite(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("k", []byte("old"), 1, 100))
	require.NoError(t, store.Set("k", []byte("new"), 2, 200))

	value, version, ts, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)
}

func TestCacheStoreMissingKey(t *testing.T) {
	store := newSQLiteCacheStore(t)

	_, _, _, err := store.Get("absent")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCacheStoreStatus(t *testing.T) {
	store := newSQLiteCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalEntries)

	require.NoError(t, store.Set("a", []byte("1"), 1, 100))
	require.NoError(t, store.Set("b", []byte("2"), 1, 300))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalEntries)
	assert.Equal(t, int64(300), status.LastEntryTime.Unix())
	assert.Equal(t, int64(100), status.OldestEntryTime.Unix())
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore("complexity_cache", schema.NoneBackend, "")
	require.NoError(t, err)

	// Writes are silently dropped and reads always miss.
	require.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, getErr := store.Get("k")
	assert.ErrorIs(t, getErr, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestNewCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad-name;", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorContains(t, err, "invalid table name")
}

func TestNewCacheStoreUnknownBackend(t *testing.T) {
	_, err := NewCacheStore("cache", schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported cache backend")
}
