package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetric(t *testing.T) {
	defined := DefinedMetric(3.5)
	assert.True(t, defined.IsDefined())
	assert.Equal(t, 3.5, defined.Float64())

	undefined := UndefinedMetric()
	assert.False(t, undefined.IsDefined())
	assert.True(t, math.IsNaN(undefined.Float64()))

	// The zero value of Metric is undefined.
	var zero Metric
	assert.False(t, zero.IsDefined())
}

func TestComplexityMemberQualifiedName(t *testing.T) {
	fn := ComplexityMember{Name: "load", Kind: FunctionMember}
	assert.Equal(t, "load", fn.QualifiedName())

	method := ComplexityMember{Name: "run", ClassName: "Engine", Kind: MethodMember}
	assert.Equal(t, "Engine.run", method.QualifiedName())

	// A method missing its class falls back to the bare name.
	orphan := ComplexityMember{Name: "run", Kind: MethodMember}
	assert.Equal(t, "run", orphan.QualifiedName())

	class := ComplexityMember{Name: "Engine", ClassName: "Engine", Kind: ClassMember}
	assert.Equal(t, "Engine", class.QualifiedName())
}

func TestComplexityMemberLength(t *testing.T) {
	m := ComplexityMember{StartLine: 10, EndLine: 25}
	assert.Equal(t, 15, m.Length())

	// The analyzer sometimes reports a single-line span.
	point := ComplexityMember{StartLine: 7, EndLine: 7}
	assert.Equal(t, 0, point.Length())
}

func TestValidityMaps(t *testing.T) {
	for _, mode := range []OutputMode{TextOut, CSVOut, JSONOut, ParquetOut} {
		_, ok := ValidOutputModes[mode]
		assert.True(t, ok, mode)
	}
	_, ok := ValidOutputModes[OutputMode("yaml")]
	assert.False(t, ok)

	for _, backend := range []DatabaseBackend{SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend} {
		_, ok := ValidDatabaseBackends[backend]
		assert.True(t, ok, backend)
	}
	_, ok = ValidDatabaseBackends[DatabaseBackend("oracle")]
	assert.False(t, ok)
}
