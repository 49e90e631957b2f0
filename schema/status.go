package schema

import "time"

// CacheStatus holds status information about the complexity cache store.
type CacheStatus struct {
	Backend         string    // Backend type (sqlite, mysql, postgresql, none)
	Connected       bool      // Whether a live connection exists
	TotalEntries    int64     // Number of cached entries
	LastEntryTime   time.Time // Timestamp of the newest entry
	OldestEntryTime time.Time // Timestamp of the oldest entry
	TableSizeBytes  int64     // Approximate on-disk size
}

// AnalysisStatus holds status information about the analysis-run store.
type AnalysisStatus struct {
	Backend       string           // Backend type (sqlite, mysql, postgresql, none)
	Connected     bool             // Whether a live connection exists
	TotalRuns     int64            // Number of recorded analysis runs
	LastRunID     int64            // ID of the most recent run
	LastRunTime   time.Time        // Start time of the most recent run
	OldestRunTime time.Time        // Start time of the earliest run
	TotalFiles    int64            // Sum of files ranked across all runs
	TableSizes    map[string]int64 // Row counts per tracking table
}

// AnalysisRunRecord is one persisted analysis run, as read back from the
// analysis store for status display and Parquet export.
type AnalysisRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalFiles    int32
	ConfigParams  *string
}

// RankingEntryRecord is one persisted ranked file belonging to a run.
// Complexity and Score are nil when the source entry had undefined metrics.
type RankingEntryRecord struct {
	RunID      int64
	Rank       int32
	FilePath   string
	Churn      int32
	Complexity *float64
	Score      *float64
}
