// Package parquet provides data structures and functions for exporting
// refactoring rankings to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mosegui/lookout/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRow is one ranked file in columnar form. Score and Complexity are
// nullable because files with no measurable members carry undefined metrics.
type RankingRow struct {
	// Rank is the 1-based position of the file in the ranking
	Rank int32 `parquet:"rank,snappy"`

	// FilePath is the absolute path to the file
	FilePath string `parquet:"file_path,snappy"`

	// Score is the refactoring priority score (nullable)
	Score *float64 `parquet:"score,optional,snappy"`

	// Complexity is the length-weighted cyclomatic complexity (nullable)
	Complexity *float64 `parquet:"complexity,optional,snappy"`

	// Churn is the number of historical change events for the file
	Churn int32 `parquet:"churn,snappy"`

	// RankedAt is when the ranking was produced
	RankedAt time.Time `parquet:"ranked_at,snappy"`
}

// ConvertRankingEntries converts ranked entries to rows for Parquet export.
func ConvertRankingEntries(entries []schema.RefactoringEntry) []RankingRow {
	now := time.Now()
	rows := make([]RankingRow, len(entries))
	for i, e := range entries {
		rows[i] = RankingRow{
			Rank:       int32(i + 1),
			FilePath:   e.Path,
			Score:      optionalMetric(e.Score),
			Complexity: optionalMetric(e.Complexity),
			Churn:      int32(e.Churn),
			RankedAt:   now,
		}
	}
	return rows
}

// WriteRankingFile writes the ranked entries to a Parquet file.
func WriteRankingFile(outputPath string, entries []schema.RefactoringEntry) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the RankingRow struct tags
	writer := parquet.NewGenericWriter[RankingRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertRankingEntries(entries)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ReadRankingFile reads back the rows of a ranking Parquet file.
func ReadRankingFile(path string) ([]RankingRow, error) {
	rows, err := parquet.ReadFile[RankingRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}

func optionalMetric(m schema.Metric) *float64 {
	if !m.IsDefined() {
		return nil
	}
	v := m.Float64()
	return &v
}
