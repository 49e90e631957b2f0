package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mosegui/lookout/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the lookout_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFiles is the number of files ranked in this run
	TotalFiles int32 `parquet:"total_files,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunEntry represents one ranked file belonging to an analysis run.
// This struct maps to the lookout_entries database table.
type RunEntry struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the 1-based position of the file within the run
	Rank int32 `parquet:"rank,snappy"`

	// FilePath is the absolute path to the file
	FilePath string `parquet:"file_path,snappy"`

	// Churn is the number of historical change events for the file
	Churn int32 `parquet:"churn,snappy"`

	// Complexity is the length-weighted cyclomatic complexity (nullable)
	Complexity *float64 `parquet:"complexity,optional,snappy"`

	// Score is the refactoring priority score (nullable)
	Score *float64 `parquet:"score,optional,snappy"`
}

// ConvertAnalysisRunRecords converts store records to rows for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalFiles:    record.TotalFiles,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRankingEntryRecords converts store records to rows for Parquet export.
func ConvertRankingEntryRecords(records []schema.RankingEntryRecord) []RunEntry {
	result := make([]RunEntry, len(records))
	for i, record := range records {
		result[i] = RunEntry{
			RunID:      record.RunID,
			Rank:       record.Rank,
			FilePath:   record.FilePath,
			Churn:      record.Churn,
			Complexity: record.Complexity,
			Score:      record.Score,
		}
	}
	return result
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunEntriesParquet writes a slice of RunEntry structs to a Parquet file.
func WriteRunEntriesParquet(data []RunEntry, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes any row type to a Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
