// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/mosegui/lookout/schema"
)

// GitClient defines the version-control operations the churn collector needs.
// This allows the core pipeline to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command scoped to repoPath and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetChangeLog returns the raw name-only commit log for everything under
	// dir, one changed path per line, relative to the repository root.
	GetChangeLog(ctx context.Context, dir string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)
}

// ComplexityAnalyzer defines the structural-analysis collaborator. The
// analyzer owns all source parsing; lookout only post-processes its members.
type ComplexityAnalyzer interface {
	// Analyze reports the structural members of one file. A file the
	// analyzer cannot parse (e.g. syntax error) yields an empty member
	// list and a nil error; only failures of the analyzer itself error.
	Analyze(ctx context.Context, path string) ([]schema.ComplexityMember, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetComplexityStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and the
// per-file entries they produce.
type AnalysisStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data.
	EndRun(runID int64, endTime time.Time, totalFiles int) error

	// RecordEntry stores one ranked entry for a run.
	RecordEntry(runID int64, rank int, entry schema.RefactoringEntry) error

	// GetAllRuns retrieves every recorded run, ordered by run ID.
	GetAllRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllEntries retrieves every recorded ranking entry, ordered by
	// run ID and rank.
	GetAllEntries() ([]schema.RankingEntryRecord, error)

	// GetStatus returns status information about the analysis store.
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection.
	Close() error
}
