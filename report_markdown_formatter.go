package structeval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-sommer/stick"
)

// suiteMarkdown is the comparison table rendered once per suite run, one
// section per dataset with a row per extraction method.
const suiteMarkdown = `# Structured extraction accuracy

{% for ds in datasets %}## {{ ds.name }}

| Method | Matched Records | Fields Evaluated | Matches | Accuracy |
|--------|-----------------|------------------|---------|----------|
{% for run in ds.runs %}| {{ run.method }} | {{ run.matched }} | {{ run.fields }} | {{ run["matches"] }} | {{ run.accuracy }} |
{% endfor %}
{% endfor %}`

// FormatMarkdown renders the suite's cross-method comparison tables.
func (sr *SuiteReport) FormatMarkdown() (string, error) {
	var names []string
	grouped := map[string][]*RunResult{}
	for _, res := range sr.Results {
		if _, seen := grouped[res.Dataset]; !seen {
			names = append(names, res.Dataset)
		}
		grouped[res.Dataset] = append(grouped[res.Dataset], res)
	}

	datasets := make([]stick.Value, 0, len(names))
	for _, name := range names {
		runs := make([]stick.Value, 0, len(grouped[name]))
		for _, res := range grouped[name] {
			runs = append(runs, markdownRow(res))
		}
		datasets = append(datasets, map[string]stick.Value{
			"name": name,
			"runs": runs,
		})
	}

	var out strings.Builder
	env := stick.New(nil)
	ctx := map[string]stick.Value{"datasets": datasets}
	if err := env.Execute(suiteMarkdown, &out, ctx); err != nil {
		return "", fmt.Errorf("rendering markdown report: %w", err)
	}
	return out.String(), nil
}

func markdownRow(res *RunResult) map[string]stick.Value {
	if res.Err != nil {
		return map[string]stick.Value{
			"method":   res.Method,
			"matched":  "-",
			"fields":   "-",
			"matches":  "-",
			"accuracy": "failed: " + res.Error,
		}
	}
	r := res.Report
	return map[string]stick.Value{
		"method":   res.Method,
		"matched":  strconv.Itoa(r.MatchedRecords),
		"fields":   strconv.Itoa(r.TotalFields),
		"matches":  strconv.Itoa(r.TotalMatches),
		"accuracy": fmt.Sprintf("%.1f%%", r.Accuracy()),
	}
}
