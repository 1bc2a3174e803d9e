package structeval

import (
	"strconv"
	"strings"
)

// FieldValue is one flattened leaf of a record.
type FieldValue struct {
	Path  string
	Value Value
}

// Flatten walks a record and returns its leaves as (path, value) pairs in
// source order. Mappings extend the path with ".key", sequences of mappings
// with "[index]" plus a synthetic ".count" leaf carrying the sequence length,
// and sequences of scalars stay whole as a single leaf. Flattening the same
// record twice yields the same paths in the same order.
func Flatten(r Record) []FieldValue {
	var out []FieldValue
	flattenValue("", r.Value, &out)
	return out
}

func flattenValue(path string, v Value, out *[]FieldValue) {
	switch {
	case v.Kind == KindMapping:
		for _, key := range v.Keys {
			flattenValue(joinPath(path, key), v.Fields[key], out)
		}
	case entitySequence(v):
		for i, elem := range v.Elems {
			flattenValue(indexPath(path, i), elem, out)
		}
		*out = append(*out, FieldValue{Path: path + ".count", Value: numberValue(len(v.Elems))})
	default:
		*out = append(*out, FieldValue{Path: path, Value: v})
	}
}

// entitySequence reports whether a sequence holds repeated sub-entities
// (mappings) rather than plain scalars. Mixed sequences follow their first
// element.
func entitySequence(v Value) bool {
	return v.Kind == KindSequence && len(v.Elems) > 0 && v.Elems[0].Kind == KindMapping
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

// stripIndexes removes "[i]" segments from a path, leaving the bare field
// path used for normalizer matching and grouping.
func stripIndexes(path string) string {
	if !strings.ContainsRune(path, '[') {
		return path
	}
	var sb strings.Builder
	sb.Grow(len(path))
	skip := false
	for _, r := range path {
		switch {
		case r == '[':
			skip = true
		case r == ']':
			skip = false
		case !skip:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
