package structeval

// Evaluate scores a candidate collection against a gold collection and
// returns the aggregate report. It is a pure function of its inputs: all
// per-field state lives in a local accumulator, so independent evaluations
// can run concurrently.
func Evaluate(gold, candidate *Collection, opts ...Option) (*Report, error) {
	o := buildOptions(opts)

	pairs, err := match(gold, candidate, o)
	if err != nil {
		return nil, err
	}

	matched := make(map[int]Record, len(pairs))
	for _, p := range pairs {
		matched[p.Gold.Index] = p.Candidate
	}

	s := &scorer{o: o, acc: newAccumulator()}
	for _, g := range gold.Records {
		cand, ok := matched[g.Index]
		switch {
		case ok:
			s.value(g.Index, "", g.Value, cand.Value, true)
		case o.ScoreMissingRecords:
			s.value(g.Index, "", g.Value, Null, false)
		}
	}

	report := s.acc.report()
	report.GoldRecords = len(gold.Records)
	report.CandidateRecords = len(candidate.Records)
	report.MatchedRecords = len(pairs)
	report.DroppedRecords = candidate.Dropped
	o.Log.Debug("evaluation complete",
		"matched", report.MatchedRecords,
		"fields", report.TotalFields,
		"matches", report.TotalMatches,
		"accuracy", report.OverallAccuracy)
	return report, nil
}

type scorer struct {
	o   *Options
	acc *accumulator
}

// value walks gold and candidate in parallel, mirroring Flatten's traversal
// order, and records one comparison per gold leaf. candPresent distinguishes
// a candidate null from a candidate that has no value at this path at all.
func (s *scorer) value(idx int, path string, gold, cand Value, candPresent bool) {
	switch {
	case gold.Kind == KindMapping:
		for _, key := range gold.Keys {
			cv, ok := Null, false
			if candPresent {
				cv, ok = cand.Field(key)
			}
			s.value(idx, joinPath(path, key), gold.Fields[key], cv, ok)
		}
	case entitySequence(gold):
		candSeq := candPresent && cand.Kind == KindSequence
		for i, elem := range gold.Elems {
			if candSeq && i < len(cand.Elems) {
				s.value(idx, indexPath(path, i), elem, cand.Elems[i], true)
			}
			// Elements past the candidate's length have nothing to score
			// against; the count leaf below carries the length mismatch.
		}
		candCount := Null
		if candSeq {
			candCount = numberValue(len(cand.Elems))
		} else if candPresent {
			candCount = cand // wrong kind, counted as a mismatch
		}
		s.record(idx, path+".count", numberValue(len(gold.Elems)), candCount)
	default:
		cv := Null
		if candPresent {
			cv = cand
		}
		s.record(idx, path, gold, cv)
	}
}

func (s *scorer) record(idx int, path string, gold, cand Value) {
	s.acc.add(path, s.o.equalLeaf(path, gold, cand), idx)
}

// accumulator is the explicit per-run mutable state of a scoring pass.
type accumulator struct {
	order  []string
	scores map[string]*FieldScore
}

func newAccumulator() *accumulator {
	return &accumulator{scores: map[string]*FieldScore{}}
}

func (a *accumulator) add(path string, match bool, recordIndex int) {
	fs, ok := a.scores[path]
	if !ok {
		fs = &FieldScore{Path: path}
		a.scores[path] = fs
		a.order = append(a.order, path)
	}
	fs.Total++
	if match {
		fs.Matches++
	} else {
		fs.Mismatches = append(fs.Mismatches, recordIndex)
	}
}

func (a *accumulator) report() *Report {
	r := &Report{Fields: make([]*FieldScore, 0, len(a.order))}
	for _, path := range a.order {
		fs := a.scores[path]
		r.Fields = append(r.Fields, fs)
		r.TotalFields += fs.Total
		r.TotalMatches += fs.Matches
	}
	r.OverallAccuracy = r.Accuracy()
	return r
}
