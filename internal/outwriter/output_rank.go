package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/internal/parquet"
	"github.com/mosegui/lookout/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankingResults outputs the ranked entries, dispatching based on the
// output format configured.
func WriteRankingResults(entries []schema.RefactoringEntry, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONRanking(w, entries, cfg)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRanking(w, entries, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetRanking(entries, cfg)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(w, entries, cfg, duration)
		}, "Wrote table")
	}
}

// topDefinedScore returns the highest defined score of the run, which anchors
// the relative priority labels. Entries arrive ordered, so the first defined
// score is the maximum. Returns 0 when no entry has a score.
func topDefinedScore(entries []schema.RefactoringEntry) float64 {
	for _, e := range entries {
		if e.Score.IsDefined() {
			return e.Score.Float64()
		}
	}
	return 0
}

// entryLabel picks the plain priority label for one entry.
func entryLabel(e schema.RefactoringEntry, topScore float64) string {
	if !e.Score.IsDefined() {
		return contract.UnscoredValue
	}
	return contract.GetPlainLabel(e.Score.Float64(), topScore)
}

// entryColorLabel picks the colored priority label for table output.
func entryColorLabel(e schema.RefactoringEntry, topScore float64) string {
	if !e.Score.IsDefined() {
		return contract.UnscoredColor.Sprint(contract.UnscoredValue)
	}
	return contract.GetColorLabel(e.Score.Float64(), topScore)
}

// writeRankingTable generates and writes the human-readable table.
func writeRankingTable(writer io.Writer, entries []schema.RefactoringEntry, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Score", "Complexity", "Churn", "Label", "Path"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	topScore := topDefinedScore(entries)
	maxPathWidth := getMaxTablePathWidth(cfg)

	labelFor := entryLabel
	if cfg.UseColors {
		labelFor = entryColorLabel
	}

	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			formatMetric(e.Score, cfg.Precision),
			formatMetric(e.Complexity, cfg.Precision),
			strconv.Itoa(e.Churn),
			labelFor(e, topScore),
			contract.TruncatePath(e.Path, maxPathWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d files by refactoring priority\n", len(entries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVRanking writes the ranking in CSV format. Undefined metrics are
// rendered as the literal NaN, matching the table output.
func writeCSVRanking(w io.Writer, entries []schema.RefactoringEntry, cfg *contract.Config) error {
	topScore := topDefinedScore(entries)
	header := []string{"rank", "path", "score", "complexity", "churn", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, e := range entries {
			rec := []string{
				strconv.Itoa(i + 1),
				e.Path,
				formatMetric(e.Score, cfg.Precision),
				formatMetric(e.Complexity, cfg.Precision),
				strconv.Itoa(e.Churn),
				entryLabel(e, topScore),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONRanking writes the ranking as an indented JSON array. Undefined
// metrics serialize as null, since JSON has no NaN literal.
func writeJSONRanking(w io.Writer, entries []schema.RefactoringEntry, cfg *contract.Config) error {
	type jsonRankingEntry struct {
		Rank       int      `json:"rank"`
		Path       string   `json:"path"`
		Score      *float64 `json:"score"`
		Complexity *float64 `json:"complexity"`
		Churn      int      `json:"churn"`
		Label      string   `json:"label"`
	}

	topScore := topDefinedScore(entries)
	output := make([]jsonRankingEntry, len(entries))
	for i, e := range entries {
		output[i] = jsonRankingEntry{
			Rank:       i + 1,
			Path:       e.Path,
			Score:      metricPtr(e.Score),
			Complexity: metricPtr(e.Complexity),
			Churn:      e.Churn,
			Label:      entryLabel(e, topScore),
		}
	}
	return writeJSON(w, output)
}

// writeParquetRanking writes the ranking to a Parquet file. Unlike the text
// formats, Parquet has no stdout mode, so an output file is mandatory.
func writeParquetRanking(entries []schema.RefactoringEntry, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteRankingFile(cfg.OutputFile, entries); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// metricPtr converts a metric to its nullable serialized form.
func metricPtr(m schema.Metric) *float64 {
	if !m.IsDefined() {
		return nil
	}
	v := m.Float64()
	return &v
}
