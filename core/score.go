package core

import (
	"sort"

	"github.com/mosegui/lookout/schema"
)

// BuildEntries joins the churn and complexity maps into refactoring entries.
// Only files present in both maps yield an entry: a file with history but no
// analyzable complexity (or the reverse) carries no meaningful score and is
// silently dropped.
func BuildEntries(churn map[string]int, complexity map[string]schema.Metric) []schema.RefactoringEntry {
	entries := make([]schema.RefactoringEntry, 0, len(churn))
	for path, count := range churn {
		c, ok := complexity[path]
		if !ok {
			continue
		}
		entries = append(entries, schema.RefactoringEntry{
			Path:       path,
			Complexity: c,
			Churn:      count,
			Score:      scoreOf(c, count),
		})
	}
	return entries
}

// scoreOf computes round(complexity x churn, 2). An undefined complexity
// propagates to an undefined score.
func scoreOf(complexity schema.Metric, churn int) schema.Metric {
	if !complexity.IsDefined() {
		return schema.UndefinedMetric()
	}
	return schema.DefinedMetric(round2(complexity.Float64() * float64(churn)))
}

// Rank produces the final ordering. Entries are partitioned by whether a
// score could be computed: scored entries come first, sorted descending by
// the tuple (score, complexity, churn, path); unscored entries follow,
// sorted descending by churn then path. An unscored file still surfaces by
// how often it changes but never outranks a file with a real score.
func Rank(entries []schema.RefactoringEntry) []schema.RefactoringEntry {
	orderable := make([]schema.RefactoringEntry, 0, len(entries))
	notOrderable := make([]schema.RefactoringEntry, 0)
	for _, e := range entries {
		if e.Score.IsDefined() {
			orderable = append(orderable, e)
		} else {
			notOrderable = append(notOrderable, e)
		}
	}

	sort.Slice(orderable, func(i, j int) bool {
		return tupleGreater(orderable[i], orderable[j])
	})

	// Complexity carries no signal here, so the comparison ignores it.
	sort.Slice(notOrderable, func(i, j int) bool {
		a, b := notOrderable[i], notOrderable[j]
		if a.Churn != b.Churn {
			return a.Churn > b.Churn
		}
		return a.Path > b.Path
	})

	return append(orderable, notOrderable...)
}

// tupleGreater compares two scored entries by (score, complexity, churn,
// path), descending. The trailing path comparison makes the ordering total,
// so equal-scoring runs are deterministic.
func tupleGreater(a, b schema.RefactoringEntry) bool {
	if a.Score.Float64() != b.Score.Float64() {
		return a.Score.Float64() > b.Score.Float64()
	}
	if a.Complexity.Float64() != b.Complexity.Float64() {
		return a.Complexity.Float64() > b.Complexity.Float64()
	}
	if a.Churn != b.Churn {
		return a.Churn > b.Churn
	}
	return a.Path > b.Path
}
