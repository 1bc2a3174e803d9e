package structeval

import "encoding/json"

// FormatJSON renders the report as indented JSON for downstream aggregation
// across models.
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatJSON renders every pair's result, including failures, as indented
// JSON.
func (sr *SuiteReport) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(sr, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
