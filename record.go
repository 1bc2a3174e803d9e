package structeval

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/kaptinlin/jsonrepair"
)

// Record is one gold or candidate structured-output instance.
type Record struct {
	Index int   // position within its collection
	Value Value // always a mapping
}

// Collection is an ordered set of records read from one file.
type Collection struct {
	Path    string
	Records []Record
	Dropped int // records that could not be parsed and were skipped (candidates only)
}

// Extraction output lines can carry whole documents; allow records well past
// bufio's default token size.
const maxRecordLine = 16 << 20

// LoadGold reads a gold collection. Gold data is trusted, so any record that
// fails to parse is fatal.
func LoadGold(path string, opts ...Option) (*Collection, error) {
	return loadCollection(path, false, buildOptions(opts))
}

// LoadCandidate reads a candidate collection. Records that fail to parse are
// dropped from scoring (optionally after a repair attempt, see WithRepair)
// rather than failing the run.
func LoadCandidate(path string, opts ...Option) (*Collection, error) {
	return loadCollection(path, true, buildOptions(opts))
}

// ParseGold decodes gold records from raw bytes. name is used in error
// messages in place of a file path.
func ParseGold(name string, data []byte, opts ...Option) (*Collection, error) {
	return parseCollection(name, data, false, buildOptions(opts))
}

// ParseCandidate decodes candidate records from raw bytes.
func ParseCandidate(name string, data []byte, opts ...Option) (*Collection, error) {
	return parseCollection(name, data, true, buildOptions(opts))
}

func loadCollection(path string, lenient bool, o *Options) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputFormatError{Path: path, Reason: "reading input", Err: err}
	}
	return parseCollection(path, data, lenient, o)
}

// parseCollection accepts either a JSON array of record objects or
// newline-delimited JSON with one object per line. The container format is
// sniffed, not configured.
func parseCollection(name string, data []byte, lenient bool, o *Options) (*Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &InputFormatError{Path: name, Reason: "empty input"}
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/x-ndjson"):
		return parseLines(name, trimmed, lenient, o)
	case mt.Is("application/json"):
		return parseDocument(name, trimmed, lenient, o)
	default:
		if lenient && trimmed[0] == '{' {
			// Damaged extraction output often stops being valid JSON part-way
			// through a line; fall back to line-wise parsing and rescue what
			// still decodes.
			return parseLines(name, trimmed, lenient, o)
		}
		return nil, &InputFormatError{Path: name, Reason: fmt.Sprintf("detected %s, want JSON records", mt.String())}
	}
}

func parseDocument(name string, data []byte, lenient bool, o *Options) (*Collection, error) {
	v, err := ParseValue(data)
	if err != nil && lenient && o.Repair {
		if repaired, repairErr := jsonrepair.JSONRepair(string(data)); repairErr == nil {
			v, err = ParseValue([]byte(repaired))
		}
	}
	if err != nil {
		if lenient && data[0] == '{' {
			return parseLines(name, data, lenient, o)
		}
		return nil, &InputFormatError{Path: name, Reason: "invalid JSON", Err: err}
	}

	c := &Collection{Path: name}
	switch v.Kind {
	case KindSequence:
		for i, elem := range v.Elems {
			if elem.Kind != KindMapping {
				if lenient {
					c.Dropped++
					o.Log.Debug("dropping non-mapping record", "path", name, "index", i, "kind", elem.Kind.String())
					continue
				}
				return nil, &InputFormatError{Path: name, Reason: fmt.Sprintf("record %d is a %s, want a mapping", i, elem.Kind)}
			}
			c.Records = append(c.Records, Record{Index: len(c.Records), Value: elem})
		}
	case KindMapping:
		c.Records = append(c.Records, Record{Value: v})
	default:
		return nil, &InputFormatError{Path: name, Reason: fmt.Sprintf("top-level JSON is a %s, want an array of records", v.Kind)}
	}
	return c, nil
}

func parseLines(name string, data []byte, lenient bool, o *Options) (*Collection, error) {
	c := &Collection{Path: name}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64<<10), maxRecordLine)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		v, err := ParseValue(line)
		if err != nil && lenient && o.Repair {
			if repaired, repairErr := jsonrepair.JSONRepair(string(line)); repairErr == nil {
				v, err = ParseValue([]byte(repaired))
				if err == nil {
					o.Log.Debug("repaired candidate record", "path", name, "line", lineNo)
				}
			}
		}
		switch {
		case err != nil && lenient:
			c.Dropped++
			o.Log.Debug("dropping unparseable record", "path", name, "line", lineNo, "error", err)
			continue
		case err != nil:
			return nil, &InputFormatError{Path: name, Reason: fmt.Sprintf("line %d: invalid JSON", lineNo), Err: err}
		case v.Kind != KindMapping && lenient:
			c.Dropped++
			o.Log.Debug("dropping non-mapping record", "path", name, "line", lineNo, "kind", v.Kind.String())
			continue
		case v.Kind != KindMapping:
			return nil, &InputFormatError{Path: name, Reason: fmt.Sprintf("line %d is a %s, want a mapping", lineNo, v.Kind)}
		}
		c.Records = append(c.Records, Record{Index: len(c.Records), Value: v})
	}
	if err := sc.Err(); err != nil {
		return nil, &InputFormatError{Path: name, Reason: "reading records", Err: err}
	}
	if len(c.Records) == 0 && !lenient {
		return nil, &InputFormatError{Path: name, Reason: "no records found"}
	}
	return c, nil
}
