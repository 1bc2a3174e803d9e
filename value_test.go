package structeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueKinds(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind Kind
	}{
		{"null", `null`, KindNull},
		{"bool", `true`, KindBool},
		{"number", `42.5`, KindNumber},
		{"text", `"hello"`, KindText},
		{"mapping", `{"a": 1}`, KindMapping},
		{"sequence", `[1, 2]`, KindSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind)
		})
	}
}

func TestParseValuePreservesKeyOrder(t *testing.T) {
	v, err := ParseValue([]byte(`{"zebra": 1, "apple": 2, "mango": {"y": 1, "x": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, v.Keys)
	nested, ok := v.Field("mango")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "x"}, nested.Keys)
}

func TestParseValueKeepsNumberLiterals(t *testing.T) {
	v, err := ParseValue([]byte(`{"int": 17, "float": 2.50, "big": 9007199254740993}`))
	require.NoError(t, err)

	intVal, _ := v.Field("int")
	assert.Equal(t, "17", intVal.Number.String())
	floatVal, _ := v.Field("float")
	assert.Equal(t, "2.50", floatVal.Number.String())
	// Would lose precision through a float64 round-trip.
	bigVal, _ := v.Field("big")
	assert.Equal(t, "9007199254740993", bigVal.Number.String())
}

func TestParseValueRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"truncated", `{"a": `},
		{"trailing", `{"a": 1} extra`},
		{"bare word", `hello`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParseValueDuplicateKeys(t *testing.T) {
	v, err := ParseValue([]byte(`{"a": 1, "a": 2}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, v.Keys)
	child, _ := v.Field("a")
	assert.Equal(t, "2", child.Number.String())
}

func TestValueString(t *testing.T) {
	v := MustParseValue(`{"name": "Ada", "scores": [1, 2], "ok": true, "gone": null}`)
	assert.Equal(t, `{"name":"Ada","scores":[1,2],"ok":true,"gone":null}`, v.String())
}

func TestValueFieldOnNonMapping(t *testing.T) {
	v := MustParseValue(`[1, 2]`)
	_, ok := v.Field("a")
	assert.False(t, ok)
}
