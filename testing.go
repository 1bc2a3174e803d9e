package structeval

import "fmt"

// MustParseValue builds a Value from literal JSON and panics on malformed
// input. Intended for tests and examples.
func MustParseValue(data string) Value {
	v, err := ParseValue([]byte(data))
	if err != nil {
		panic(fmt.Sprintf("structeval: parse %q: %v", data, err))
	}
	return v
}

// MustParseGold decodes gold records from literal JSON and panics on
// malformed input. Intended for tests and examples.
func MustParseGold(data string) *Collection {
	c, err := ParseGold("gold", []byte(data))
	if err != nil {
		panic(fmt.Sprintf("structeval: parse gold: %v", err))
	}
	return c
}

// MustParseCandidate decodes candidate records from literal JSON. Unlike
// MustParseGold it tolerates broken records the way a real candidate load
// does.
func MustParseCandidate(data string) *Collection {
	c, err := ParseCandidate("candidate", []byte(data))
	if err != nil {
		panic(fmt.Sprintf("structeval: parse candidate: %v", err))
	}
	return c
}
