package structeval

import (
	"strings"
	"time"
)

// NormalizeFunc rewrites a text value into its canonical form before
// comparison.
type NormalizeFunc func(string) string

// Built-in normalizer names accepted in suite configuration files.
const (
	NormalizerState    = "state"
	NormalizerDate     = "date"
	NormalizerDatePart = "date-part"
)

// NormalizerByName resolves a built-in normalizer from its configuration
// name.
func NormalizerByName(name string) (NormalizeFunc, bool) {
	switch name {
	case NormalizerState:
		return NormalizeState, true
	case NormalizerDate:
		return NormalizeDate, true
	case NormalizerDatePart:
		return NormalizeDatePart, true
	}
	return nil, false
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// NormalizeState maps US state abbreviations to lowercase full names, so
// "NY", "New York" and "new york" all compare equal. Unknown values are
// lowercased as-is.
func NormalizeState(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if full, ok := stateNames[strings.ToUpper(s)]; ok {
		return strings.ToLower(full)
	}
	return strings.ToLower(s)
}

// dateLayouts are the human formats extraction output tends to use for
// dates, tried in order after the ISO fast path.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"02/01/2006",
}

// NormalizeDate rewrites a date into ISO form (YYYY-MM-DD) when it can, from
// ISO datetimes, US-style slashed dates, or spelled-out month names. Values
// that resist every layout pass through unchanged.
func NormalizeDate(s string) string {
	s = NormalizeDatePart(s)
	if s == "" {
		return s
	}
	if isISODate(s) {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// NormalizeDatePart strips a time component from an ISO datetime, keeping
// only the date part. "2012-03-01T14:00:00Z" becomes "2012-03-01".
func NormalizeDatePart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
