package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		topScore float64
		want     string
	}{
		{"top of the run is critical", 50.0, 50.0, CriticalValue},
		{"eighty percent is critical", 40.0, 50.0, CriticalValue},
		{"just under eighty is high", 39.9, 50.0, HighValue},
		{"sixty percent is high", 30.0, 50.0, HighValue},
		{"forty percent is moderate", 20.0, 50.0, ModerateValue},
		{"below forty is low", 19.0, 50.0, LowValue},
		{"tiny score is low", 0.5, 50.0, LowValue},
		{"zero top score degrades to low", 10.0, 0.0, LowValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainLabel(tt.score, tt.topScore))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	// The colored label must still carry the plain text.
	assert.Contains(t, GetColorLabel(50.0, 50.0), CriticalValue)
	assert.Contains(t, GetColorLabel(1.0, 50.0), LowValue)
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		want     bool
	}{
		{"directory segment", "/repo/__pycache__/mod.py", []string{"__pycache__/"}, true},
		{"directory prefix", "venv/lib/site.py", []string{"venv/"}, true},
		{"extension suffix", "/repo/model.pyc", []string{".pyc"}, true},
		{"glob on basename", "/repo/api_gen.py", []string{"*_gen.py"}, true},
		{"plain substring", "/repo/vendor/pkg.py", []string{"vendor"}, true},
		{"no match", "/repo/app.py", []string{"__pycache__/", "*.gen.py"}, false},
		{"empty excludes", "/repo/app.py", nil, false},
		{"blank pattern skipped", "/repo/app.py", []string{"  ", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	long := "/very/long/path/to/some/deeply/nested/module.py"

	got := TruncatePath(long, 20)
	assert.Len(t, got, 20)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "module.py"))

	// Short paths and degenerate widths pass through untouched.
	assert.Equal(t, "a.py", TruncatePath("a.py", 20))
	assert.Equal(t, long, TruncatePath(long, 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "No", "false", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetDBFilePaths(t *testing.T) {
	cache := GetCacheDBFilePath()
	analysis := GetAnalysisDBFilePath()

	assert.True(t, strings.HasSuffix(cache, ".lookout_cache.db"))
	assert.True(t, strings.HasSuffix(analysis, ".lookout_analysis.db"))
	assert.NotEqual(t, cache, analysis)
}
