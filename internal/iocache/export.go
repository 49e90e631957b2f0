package iocache

import (
	"errors"
	"fmt"

	"github.com/mosegui/lookout/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total ranking entries: %d\n", status.TableSizes[entriesTable])

	// Retrieve all analysis runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all ranking entries
	entries, err := store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking entries: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetEntries := parquet.ConvertRankingEntryRecords(entries)

	// Write analysis runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	// Write ranking entries to Parquet
	entriesFile := outputFile + ".entries.parquet"
	if err := parquet.WriteRunEntriesParquet(parquetEntries, entriesFile); err != nil {
		return fmt.Errorf("failed to write ranking entries: %w", err)
	}
	fmt.Printf("Exported %d ranking entries to: %s\n", len(parquetEntries), entriesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
