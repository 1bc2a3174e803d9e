package structeval

import "fmt"

// InputFormatError reports a gold or candidate file that cannot be read as a
// collection of records. It aborts a run before any scoring happens.
type InputFormatError struct {
	Path   string // file the data came from, or a synthetic name
	Reason string
	Err    error // underlying decode error, may be nil
}

func (e *InputFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// DataMismatchError reports that no record in the candidate collection could
// be aligned with a gold record. There is nothing to evaluate, so the run
// aborts instead of emitting an empty report.
type DataMismatchError struct {
	GoldRecords      int
	CandidateRecords int
}

func (e *DataMismatchError) Error() string {
	return fmt.Sprintf("no overlap between %d gold and %d candidate records", e.GoldRecords, e.CandidateRecords)
}
