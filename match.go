package structeval

import "strings"

// MatchedPair couples a gold record with the candidate record that shares its
// identity.
type MatchedPair struct {
	Gold      Record
	Candidate Record
}

// Match aligns candidate records with gold records, by the configured id
// field or by position, and returns the intersection in gold order. Zero
// overlap yields a *DataMismatchError.
func Match(gold, candidate *Collection, opts ...Option) ([]MatchedPair, error) {
	return match(gold, candidate, buildOptions(opts))
}

func match(gold, candidate *Collection, o *Options) ([]MatchedPair, error) {
	pairs := matchPairs(gold, candidate, o)
	if len(pairs) == 0 {
		return nil, &DataMismatchError{GoldRecords: len(gold.Records), CandidateRecords: len(candidate.Records)}
	}
	o.Log.Debug("matched records", "gold", len(gold.Records), "candidate", len(candidate.Records), "matched", len(pairs))
	return pairs, nil
}

func matchPairs(gold, candidate *Collection, o *Options) []MatchedPair {
	if o.Positional || !anyRecordID(gold, o.GoldIDField) {
		n := len(gold.Records)
		if len(candidate.Records) < n {
			n = len(candidate.Records)
		}
		pairs := make([]MatchedPair, 0, n)
		for i := 0; i < n; i++ {
			pairs = append(pairs, MatchedPair{Gold: gold.Records[i], Candidate: candidate.Records[i]})
		}
		return pairs
	}

	lookup := make(map[string]Record, len(candidate.Records))
	for _, r := range candidate.Records {
		id, ok := recordID(r, o.CandidateIDField)
		if !ok {
			continue
		}
		if _, dup := lookup[id]; !dup {
			lookup[id] = r
		}
	}

	var pairs []MatchedPair
	for _, g := range gold.Records {
		id, ok := recordID(g, o.GoldIDField)
		if !ok {
			continue
		}
		if c, found := lookup[id]; found {
			pairs = append(pairs, MatchedPair{Gold: g, Candidate: c})
		}
	}
	return pairs
}

// anyRecordID reports whether at least one record carries the id field.
// Collections without it fall back to positional alignment.
func anyRecordID(c *Collection, field string) bool {
	for _, r := range c.Records {
		if _, ok := recordID(r, field); ok {
			return true
		}
	}
	return false
}

// recordID resolves the dotted id path inside a record and canonicalizes the
// scalar it finds, so a numeric 17 and a string "17" identify the same
// record.
func recordID(r Record, field string) (string, bool) {
	v := r.Value
	for _, key := range strings.Split(field, ".") {
		child, ok := v.Field(key)
		if !ok {
			return "", false
		}
		v = child
	}
	switch v.Kind {
	case KindText:
		return v.Text, true
	case KindNumber:
		return v.Number.String(), true
	}
	return "", false
}
