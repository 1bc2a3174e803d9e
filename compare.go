package structeval

import "strings"

// equalLeaf reports whether a candidate leaf matches a gold leaf. A candidate
// value that was absent from the record is passed in as Null: gold null
// against candidate null or absent matches, gold non-null against candidate
// null or absent never does. Differing kinds are a mismatch, not an error.
func (o *Options) equalLeaf(path string, gold, cand Value) bool {
	if gold.Kind == KindNull {
		return cand.Kind == KindNull
	}
	if cand.Kind == KindNull {
		return false
	}

	// Extraction output frequently wraps single values in one-element arrays
	// (address lines especially); unwrap before declaring a type mismatch.
	if gold.Kind == KindSequence && cand.Kind == KindText {
		return len(gold.Elems) == 1 && o.equalLeaf(path, gold.Elems[0], cand)
	}
	if gold.Kind == KindText && cand.Kind == KindSequence {
		return len(cand.Elems) == 1 && o.equalLeaf(path, gold, cand.Elems[0])
	}

	if gold.Kind != cand.Kind {
		return false
	}

	switch gold.Kind {
	case KindBool:
		return gold.Bool == cand.Bool
	case KindNumber:
		return numbersEqual(gold, cand)
	case KindText:
		return o.foldText(path, gold.Text) == o.foldText(path, cand.Text)
	case KindSequence:
		if o.UnorderedScalarSequences {
			return o.sequencesEqualUnordered(path, gold, cand)
		}
		if len(gold.Elems) != len(cand.Elems) {
			return false
		}
		for i := range gold.Elems {
			if !o.equalLeaf(path, gold.Elems[i], cand.Elems[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		// Only reachable through mixed sequences kept whole as a leaf.
		if len(gold.Keys) != len(cand.Keys) {
			return false
		}
		for _, key := range gold.Keys {
			cv, ok := cand.Fields[key]
			if !ok || !o.equalLeaf(joinPath(path, key), gold.Fields[key], cv) {
				return false
			}
		}
		return true
	}
	return false
}

func (o *Options) foldText(path, s string) string {
	s = o.normalizeText(path, s)
	if o.CaseSensitive {
		return s
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// sequencesEqualUnordered compares two sequences as sets of canonical
// strings. Element multiplicity still counts.
func (o *Options) sequencesEqualUnordered(path string, gold, cand Value) bool {
	if len(gold.Elems) != len(cand.Elems) {
		return false
	}
	counts := make(map[string]int, len(gold.Elems))
	for _, e := range gold.Elems {
		counts[o.canonical(path, e)]++
	}
	for _, e := range cand.Elems {
		key := o.canonical(path, e)
		counts[key]--
		if counts[key] < 0 {
			return false
		}
	}
	return true
}

func (o *Options) canonical(path string, v Value) string {
	if v.Kind == KindText {
		return "t:" + o.foldText(path, v.Text)
	}
	return v.Kind.String() + ":" + v.String()
}

// numbersEqual compares numeric literals by value: integers exactly, and
// mixed forms like 2 and 2.0 through float comparison. Literals that fit
// neither parse fall back to string equality.
func numbersEqual(a, b Value) bool {
	if ai, errA := a.Number.Int64(); errA == nil {
		if bi, errB := b.Number.Int64(); errB == nil {
			return ai == bi
		}
	}
	af, errA := a.Number.Float64()
	bf, errB := b.Number.Float64()
	if errA == nil && errB == nil {
		return af == bf
	}
	return a.Number.String() == b.Number.String()
}
