package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankedFixture returns a small ordered ranking with one unscored trailer.
func rankedFixture() []schema.RefactoringEntry {
	return []schema.RefactoringEntry{
		{Path: "/repo/hot.py", Complexity: schema.DefinedMetric(5.0), Churn: 10, Score: schema.DefinedMetric(50.0)},
		{Path: "/repo/warm.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
		{Path: "/repo/broken.py", Complexity: schema.UndefinedMetric(), Churn: 7, Score: schema.UndefinedMetric()},
	}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:    2,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
		Workers:      4,
	}
}

func TestTopDefinedScore(t *testing.T) {
	assert.Equal(t, 50.0, topDefinedScore(rankedFixture()))
	assert.Equal(t, 0.0, topDefinedScore(nil))

	allUnscored := []schema.RefactoringEntry{
		{Path: "a.py", Score: schema.UndefinedMetric()},
	}
	assert.Equal(t, 0.0, topDefinedScore(allUnscored))
}

func TestEntryLabel(t *testing.T) {
	entries := rankedFixture()
	top := topDefinedScore(entries)

	assert.Equal(t, contract.CriticalValue, entryLabel(entries[0], top))
	assert.Equal(t, contract.LowValue, entryLabel(entries[1], top))
	assert.Equal(t, contract.UnscoredValue, entryLabel(entries[2], top))
}

func TestWriteCSVRanking(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVRanking(&buf, rankedFixture(), testConfig()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"rank", "path", "score", "complexity", "churn", "label"}, records[0])
	assert.Equal(t, []string{"1", "/repo/hot.py", "50.00", "5.00", "10", "Critical"}, records[1])
	assert.Equal(t, []string{"2", "/repo/warm.py", "12.00", "3.00", "4", "Low"}, records[2])
	assert.Equal(t, []string{"3", "/repo/broken.py", "NaN", "NaN", "7", "Unscored"}, records[3])
}

func TestWriteJSONRanking(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONRanking(&buf, rankedFixture(), testConfig()))

	var out []struct {
		Rank       int      `json:"rank"`
		Path       string   `json:"path"`
		Score      *float64 `json:"score"`
		Complexity *float64 `json:"complexity"`
		Churn      int      `json:"churn"`
		Label      string   `json:"label"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].Rank)
	require.NotNil(t, out[0].Score)
	assert.Equal(t, 50.0, *out[0].Score)
	assert.Equal(t, "Critical", out[0].Label)

	// JSON has no NaN literal; undefined metrics must serialize as null.
	assert.Nil(t, out[2].Score)
	assert.Nil(t, out[2].Complexity)
	assert.Equal(t, "Unscored", out[2].Label)
	assert.Equal(t, 7, out[2].Churn)
}

func TestWriteRankingTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.UseColors = false

	require.NoError(t, writeRankingTable(&buf, rankedFixture(), cfg, 42*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "hot.py")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "Unscored")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "Showing 3 files by refactoring priority")
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteRankingTablePrecision(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Precision = 1

	entries := []schema.RefactoringEntry{
		{Path: "/repo/a.py", Complexity: schema.DefinedMetric(3.14), Churn: 2, Score: schema.DefinedMetric(6.28)},
	}
	require.NoError(t, writeRankingTable(&buf, entries, cfg, time.Millisecond))

	assert.Contains(t, buf.String(), "6.3")
	assert.NotContains(t, buf.String(), "6.28")
}

func TestWriteParquetRankingRequiresFile(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = ""
	err := writeParquetRanking(rankedFixture(), cfg)
	assert.ErrorContains(t, err, "requires --output-file")
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "3.14", formatMetric(schema.DefinedMetric(3.14159), 2))
	assert.Equal(t, "3.1", formatMetric(schema.DefinedMetric(3.14159), 1))
	assert.Equal(t, "NaN", formatMetric(schema.UndefinedMetric(), 2))
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal clamps to minimum", 60, 15},
		{"mid-size terminal uses remainder", 100, 45},
		{"wide terminal clamps to maximum", 200, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, getMaxTablePathWidth(cfg))
		})
	}
}

func TestMetricPtr(t *testing.T) {
	p := metricPtr(schema.DefinedMetric(2.5))
	require.NotNil(t, p)
	assert.Equal(t, 2.5, *p)
	assert.Nil(t, metricPtr(schema.UndefinedMetric()))
}

func TestWriteRankingDispatch(t *testing.T) {
	// The writer facade must honor the configured output mode.
	ow := NewOutWriter()
	cfg := testConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, ow.WriteRanking(rankedFixture(), cfg, time.Second))

	assert.FileExists(t, cfg.OutputFile)
}
