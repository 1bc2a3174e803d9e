package structeval

// FieldScore accumulates the comparison outcomes for one field path across
// all scored records. Mismatches holds the gold record indices where the
// field differed, in increasing order and uncapped, so
// Total == Matches + len(Mismatches) always holds.
type FieldScore struct {
	Path       string `json:"path"`
	Matches    int    `json:"matches"`
	Total      int    `json:"total"`
	Mismatches []int  `json:"mismatches,omitempty"`
}

// Accuracy returns the field's match percentage.
func (f *FieldScore) Accuracy() float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.Matches) / float64(f.Total) * 100
}

// Report is the aggregate outcome of evaluating one candidate collection
// against one gold collection. Fields appear in the order their paths were
// first encountered.
type Report struct {
	GoldRecords      int           `json:"gold_records"`
	CandidateRecords int           `json:"candidate_records"`
	MatchedRecords   int           `json:"matched_records"`
	DroppedRecords   int           `json:"dropped_records,omitempty"`
	Fields           []*FieldScore `json:"fields"`
	TotalFields      int           `json:"total_fields"`
	TotalMatches     int           `json:"total_matches"`
	OverallAccuracy  float64       `json:"overall_accuracy"`
}

// Accuracy returns the overall match percentage: summed matches over summed
// totals, never an average of per-field percentages.
func (r *Report) Accuracy() float64 {
	if r.TotalFields == 0 {
		return 0
	}
	return float64(r.TotalMatches) / float64(r.TotalFields) * 100
}
