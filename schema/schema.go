// Package schema has the data model and shared constants for all parts of lookout.
package schema

import (
	"fmt"
	"math"
)

// MemberKind classifies a structural member reported by the complexity analyzer.
type MemberKind string

// All member kinds the analyzer reports.
const (
	FunctionMember MemberKind = "function"
	MethodMember   MemberKind = "method"
	ClassMember    MemberKind = "class"
)

// ComplexityMember is one function, method or class measured by the
// complexity analyzer within a single file.
type ComplexityMember struct {
	Name       string     // Bare member name as reported by the analyzer
	ClassName  string     // Enclosing class name, set for methods only
	Kind       MemberKind // function, method or class
	Rank       string     // Ordinal letter grade (A-F), informational only
	Complexity float64    // Raw cyclomatic complexity score
	StartLine  int        // First line of the member
	EndLine    int        // Last line of the member
}

// QualifiedName returns the display name of the member. Methods are
// qualified with their enclosing class as "Class.method".
func (m ComplexityMember) QualifiedName() string {
	if m.Kind == MethodMember && m.ClassName != "" {
		return fmt.Sprintf("%s.%s", m.ClassName, m.Name)
	}
	return m.Name
}

// Length returns the line span of the member. A zero span is possible when
// the analyzer reports the same start and end line for a member.
func (m ComplexityMember) Length() int {
	return m.EndLine - m.StartLine
}

// ChurnRecord counts version-control change events for one file.
// Paths are absolute and normalized to the local OS.
type ChurnRecord struct {
	Path  string
	Count int
}

// Metric is an optional scalar measurement. A Metric is either defined with
// a concrete value or undefined, which stands in for the NaN that a
// zero-length module produces during complexity weighting. Keeping the state
// explicit means ordering code pattern-matches on definedness instead of
// probing floats for finiteness.
type Metric struct {
	value   float64
	defined bool
}

// DefinedMetric wraps a concrete measurement value.
func DefinedMetric(v float64) Metric {
	return Metric{value: v, defined: true}
}

// UndefinedMetric returns the undefined measurement.
func UndefinedMetric() Metric {
	return Metric{}
}

// IsDefined reports whether the metric holds a concrete value.
func (m Metric) IsDefined() bool {
	return m.defined
}

// Float64 projects the metric onto a float, yielding NaN when undefined so
// that serialized output keeps the conventional representation.
func (m Metric) Float64() float64 {
	if !m.defined {
		return math.NaN()
	}
	return m.value
}

// ModuleComplexity is the length-weighted complexity of one file.
type ModuleComplexity struct {
	Path     string
	Weighted Metric
}

// RefactoringEntry combines both signals for one file. Score is
// round(complexity x churn, 2) and is undefined exactly when the
// complexity is undefined.
type RefactoringEntry struct {
	Path       string
	Complexity Metric
	Churn      int
	Score      Metric
}
