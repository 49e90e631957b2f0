package core

import (
	"math"
	"testing"

	"github.com/mosegui/lookout/schema"
	"github.com/stretchr/testify/assert"
)

func TestBuildEntriesJoin(t *testing.T) {
	churn := map[string]int{
		"a.py": 3,
		"b.py": 1,
		"c.py": 9, // no complexity measured, must be dropped
	}
	complexity := map[string]schema.Metric{
		"a.py": schema.DefinedMetric(2.0),
		"b.py": schema.UndefinedMetric(),
		"d.py": schema.DefinedMetric(5.0), // no churn, must be dropped
	}

	entries := BuildEntries(churn, complexity)
	assert.Len(t, entries, 2)

	byPath := make(map[string]schema.RefactoringEntry)
	for _, e := range entries {
		byPath[e.Path] = e
	}

	a := byPath["a.py"]
	assert.Equal(t, 3, a.Churn)
	assert.InDelta(t, 6.0, a.Score.Float64(), 1e-9)
	assert.InDelta(t, 2.0, a.Complexity.Float64(), 1e-9)

	b := byPath["b.py"]
	assert.Equal(t, 1, b.Churn)
	assert.False(t, b.Complexity.IsDefined())
	assert.False(t, b.Score.IsDefined())
	assert.True(t, math.IsNaN(b.Score.Float64()))
}

func TestRankOrdering(t *testing.T) {
	entries := []schema.RefactoringEntry{
		{Path: "low.py", Complexity: schema.DefinedMetric(1.0), Churn: 2, Score: schema.DefinedMetric(2.0)},
		{Path: "unscored_b.py", Complexity: schema.UndefinedMetric(), Churn: 4, Score: schema.UndefinedMetric()},
		{Path: "high.py", Complexity: schema.DefinedMetric(5.0), Churn: 10, Score: schema.DefinedMetric(50.0)},
		{Path: "unscored_a.py", Complexity: schema.UndefinedMetric(), Churn: 7, Score: schema.UndefinedMetric()},
		{Path: "mid.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
	}

	ranked := Rank(entries)

	paths := make([]string, 0, len(ranked))
	for _, e := range ranked {
		paths = append(paths, e.Path)
	}
	// Scored files first, best score on top. Unscored files trail,
	// ordered by churn so the most volatile still surfaces.
	assert.Equal(t, []string{"high.py", "mid.py", "low.py", "unscored_a.py", "unscored_b.py"}, paths)
}

func TestRankTieBreaks(t *testing.T) {
	t.Run("equal score falls back to complexity", func(t *testing.T) {
		entries := []schema.RefactoringEntry{
			{Path: "wide.py", Complexity: schema.DefinedMetric(2.0), Churn: 6, Score: schema.DefinedMetric(12.0)},
			{Path: "deep.py", Complexity: schema.DefinedMetric(6.0), Churn: 2, Score: schema.DefinedMetric(12.0)},
		}
		ranked := Rank(entries)
		assert.Equal(t, "deep.py", ranked[0].Path)
		assert.Equal(t, "wide.py", ranked[1].Path)
	})

	t.Run("identical metrics fall back to path", func(t *testing.T) {
		entries := []schema.RefactoringEntry{
			{Path: "alpha.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
			{Path: "zeta.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
		}
		ranked := Rank(entries)
		assert.Equal(t, "zeta.py", ranked[0].Path)
		assert.Equal(t, "alpha.py", ranked[1].Path)
	})

	t.Run("unscored ties break on path descending", func(t *testing.T) {
		entries := []schema.RefactoringEntry{
			{Path: "a.py", Complexity: schema.UndefinedMetric(), Churn: 3, Score: schema.UndefinedMetric()},
			{Path: "z.py", Complexity: schema.UndefinedMetric(), Churn: 3, Score: schema.UndefinedMetric()},
		}
		ranked := Rank(entries)
		assert.Equal(t, "z.py", ranked[0].Path)
	})
}

func TestRankIsDeterministic(t *testing.T) {
	entries := []schema.RefactoringEntry{
		{Path: "b.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
		{Path: "a.py", Complexity: schema.DefinedMetric(3.0), Churn: 4, Score: schema.DefinedMetric(12.0)},
		{Path: "c.py", Complexity: schema.UndefinedMetric(), Churn: 1, Score: schema.UndefinedMetric()},
	}

	first := Rank(append([]schema.RefactoringEntry(nil), entries...))
	for range 10 {
		again := Rank(append([]schema.RefactoringEntry(nil), entries...))
		assert.Equal(t, first, again)
	}
}

func TestScoreRounding(t *testing.T) {
	// 1.33 * 3 = 3.99, 2.675 * 2 = 5.35 (rounding half away from zero)
	entries := BuildEntries(
		map[string]int{"a.py": 3, "b.py": 2},
		map[string]schema.Metric{
			"a.py": schema.DefinedMetric(1.33),
			"b.py": schema.DefinedMetric(2.675),
		},
	)
	byPath := make(map[string]schema.RefactoringEntry)
	for _, e := range entries {
		byPath[e.Path] = e
	}
	assert.InDelta(t, 3.99, byPath["a.py"].Score.Float64(), 1e-9)
	assert.InDelta(t, 5.35, byPath["b.py"].Score.Float64(), 1e-9)
}
