package structeval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind discriminates the JSON shapes a Value can carry.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a tagged representation of a single JSON value. Mapping keys keep
// their source order so flattening, and therefore report ordering, is
// deterministic. Numbers keep their literal form for exact comparison.
type Value struct {
	Kind   Kind
	Bool   bool
	Number json.Number
	Text   string
	Keys   []string
	Fields map[string]Value
	Elems  []Value
}

// Null is the zero Value.
var Null = Value{Kind: KindNull}

func boolValue(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func textValue(s string) Value { return Value{Kind: KindText, Text: s} }
func numberValue(n int) Value  { return Value{Kind: KindNumber, Number: json.Number(strconv.Itoa(n))} }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Scalar reports whether the value is a leaf on its own (null, bool, number
// or text).
func (v Value) Scalar() bool {
	switch v.Kind {
	case KindNull, KindBool, KindNumber, KindText:
		return true
	}
	return false
}

// Field returns the named entry of a mapping value. The second result is
// false when the value is not a mapping or the key is absent.
func (v Value) Field(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Null, false
	}
	child, ok := v.Fields[key]
	return child, ok
}

// String renders the value as compact JSON, primarily for log and report
// messages.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return v.Number.String()
	case KindText:
		data, _ := json.Marshal(v.Text)
		return string(data)
	case KindMapping:
		var sb bytes.Buffer
		sb.WriteByte('{')
		for i, key := range v.Keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			name, _ := json.Marshal(key)
			sb.Write(name)
			sb.WriteByte(':')
			sb.WriteString(v.Fields[key].String())
		}
		sb.WriteByte('}')
		return sb.String()
	case KindSequence:
		var sb bytes.Buffer
		sb.WriteByte('[')
		for i, elem := range v.Elems {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(elem.String())
		}
		sb.WriteByte(']')
		return sb.String()
	}
	return fmt.Sprintf("<%s>", v.Kind)
}

// ParseValue decodes one JSON document into a Value. Trailing content after
// the document is rejected.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return Null, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null, fmt.Errorf("trailing content after JSON value")
	}
	return v, nil
}

// readValue consumes the next complete value from the decoder token stream.
// Token-level decoding is what preserves mapping key order; a plain
// json.Unmarshal into map[string]any would lose it.
func readValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null, nil
	case bool:
		return boolValue(t), nil
	case json.Number:
		return Value{Kind: KindNumber, Number: t}, nil
	case string:
		return textValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			v := Value{Kind: KindMapping, Fields: map[string]Value{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null, fmt.Errorf("mapping key is %T, want string", keyTok)
				}
				child, err := readValue(dec)
				if err != nil {
					return Null, err
				}
				if _, dup := v.Fields[key]; !dup {
					v.Keys = append(v.Keys, key)
				}
				v.Fields[key] = child // last duplicate wins, key order keeps first sighting
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Null, err
			}
			return v, nil
		case '[':
			v := Value{Kind: KindSequence}
			for dec.More() {
				child, err := readValue(dec)
				if err != nil {
					return Null, err
				}
				v.Elems = append(v.Elems, child)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Null, err
			}
			return v, nil
		}
	}
	return Null, fmt.Errorf("unexpected token %v", tok)
}
