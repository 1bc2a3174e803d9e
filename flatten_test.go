package structeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flattenPaths(t *testing.T, doc string) []string {
	t.Helper()
	fields := Flatten(Record{Value: MustParseValue(doc)})
	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}
	return paths
}

func TestFlattenNestedMapping(t *testing.T) {
	paths := flattenPaths(t, `{"patient": {"name": {"family": "Doe"}, "age": 42}, "gender": "f"}`)
	assert.Equal(t, []string{"patient.name.family", "patient.age", "gender"}, paths)
}

func TestFlattenEntitySequence(t *testing.T) {
	paths := flattenPaths(t, `{"insured": [{"year": 1999}, {"year": 2001}]}`)
	assert.Equal(t, []string{"insured[0].year", "insured[1].year", "insured.count"}, paths)
}

func TestFlattenCountCarriesLength(t *testing.T) {
	fields := Flatten(Record{Value: MustParseValue(`{"c": [{"x": 1}, {"x": 2}, {"x": 3}]}`)})
	last := fields[len(fields)-1]
	require.Equal(t, "c.count", last.Path)
	assert.Equal(t, KindNumber, last.Value.Kind)
	assert.Equal(t, "3", last.Value.Number.String())
}

func TestFlattenScalarSequenceStaysWhole(t *testing.T) {
	fields := Flatten(Record{Value: MustParseValue(`{"tags": ["a", "b"], "empty": []}`)})
	require.Len(t, fields, 2)
	assert.Equal(t, "tags", fields[0].Path)
	assert.Equal(t, KindSequence, fields[0].Value.Kind)
	// An empty sequence cannot be told apart from an empty entity list, so it
	// stays a whole-sequence leaf too.
	assert.Equal(t, "empty", fields[1].Path)
}

func TestFlattenNullLeaf(t *testing.T) {
	fields := Flatten(Record{Value: MustParseValue(`{"email": null}`)})
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Path)
	assert.True(t, fields[0].Value.IsNull())
}

func TestFlattenIdempotentAndOrderPreserving(t *testing.T) {
	rec := Record{Value: MustParseValue(`{"a": {"b": 1, "c": [{"x": 1}, {"x": 2}]}, "d": [1, 2], "e": null}`)}

	first := Flatten(rec)
	second := Flatten(rec)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
	}
}

func TestFlattenDeepNesting(t *testing.T) {
	paths := flattenPaths(t, `{"a": [{"b": [{"c": 1}]}]}`)
	assert.Equal(t, []string{"a[0].b[0].c", "a[0].b.count", "a.count"}, paths)
}

func TestStripIndexes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"patient.address.city", "patient.address.city"},
		{"insured[0].year", "insured.year"},
		{"a[12].b[3].c", "a.b.c"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripIndexes(tt.in))
	}
}
