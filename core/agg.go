// Package core implements the churn-vs-complexity analysis pipeline.
package core

import (
	"math"

	"github.com/mosegui/lookout/schema"
)

// WeightedComplexity reduces the structural members of one file to a single
// length-weighted complexity value. Only top-level function and class members
// contribute: a class entry already spans its methods, so counting methods
// too would double-weight class bulk.
//
// When the contributing members sum to zero length (the analyzer sometimes
// reports the same start and end line for a member, and an unparsable file
// has no members at all), the result is undefined rather than an error.
func WeightedComplexity(members []schema.ComplexityMember) schema.Metric {
	var totalLength int
	var weightedSum float64
	for _, m := range members {
		if m.Kind != schema.FunctionMember && m.Kind != schema.ClassMember {
			continue
		}
		length := m.Length()
		totalLength += length
		weightedSum += m.Complexity * float64(length)
	}
	if totalLength == 0 {
		return schema.UndefinedMetric()
	}
	return schema.DefinedMetric(round2(weightedSum / float64(totalLength)))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
