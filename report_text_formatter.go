package structeval

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatText renders the report in the fixed textual layout: fields grouped
// by their top-level entity in first-encounter order, one line per field,
// then the overall totals. limit caps how many mismatch indices are shown
// per field; zero or negative shows all of them.
func (r *Report) FormatText(limit int) string {
	var sb strings.Builder
	sb.WriteString("=== Field-Level Evaluation Results ===\n")

	var groups []string
	grouped := map[string][]*FieldScore{}
	for _, fs := range r.Fields {
		g := topSegment(fs.Path)
		if _, seen := grouped[g]; !seen {
			groups = append(groups, g)
		}
		grouped[g] = append(grouped[g], fs)
	}

	for _, g := range groups {
		sb.WriteString("\n" + g + ":\n")
		for _, fs := range grouped[g] {
			formatFieldLine(&sb, fs, limit)
		}
	}

	sb.WriteString("\n=== Overall Statistics ===\n")
	fmt.Fprintf(&sb, "Matched Records: %d\n", r.MatchedRecords)
	if r.DroppedRecords > 0 {
		fmt.Fprintf(&sb, "Dropped Records: %d\n", r.DroppedRecords)
	}
	fmt.Fprintf(&sb, "Total Fields Evaluated: %d\n", r.TotalFields)
	fmt.Fprintf(&sb, "Total Matches: %d\n", r.TotalMatches)
	fmt.Fprintf(&sb, "Overall Accuracy: %.1f%%\n", r.Accuracy())
	return sb.String()
}

func formatFieldLine(sb *strings.Builder, fs *FieldScore, limit int) {
	fmt.Fprintf(sb, "  %s -> %d/%d (%.1f%%)", fs.Path, fs.Matches, fs.Total, fs.Accuracy())
	if len(fs.Mismatches) > 0 {
		sb.WriteString(" [mismatches: ")
		sb.WriteString(formatIndexList(fs.Mismatches, limit))
		sb.WriteString("]")
	}
	sb.WriteString("\n")
}

func formatIndexList(indices []int, limit int) string {
	shown := indices
	truncated := false
	if limit > 0 && len(indices) > limit {
		shown = indices[:limit]
		truncated = true
	}
	parts := make([]string, len(shown))
	for i, idx := range shown {
		parts[i] = strconv.Itoa(idx)
	}
	if truncated {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// topSegment returns the leading entity name of a field path, e.g.
// "patient" for "patient.address.city" and "insured" for "insured[0].year".
func topSegment(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}
