package structeval

import (
	"context"
	"log/slog"
	"sync"
)

// RunResult is the outcome of scoring one (dataset, method) pair. Either
// Report or Err is set.
type RunResult struct {
	Dataset string  `json:"dataset"`
	Method  string  `json:"method"`
	Report  *Report `json:"report,omitempty"`
	Error   string  `json:"error,omitempty"`

	Err error `json:"-"`
}

// SuiteReport aggregates every pair of a suite run, in configuration order.
type SuiteReport struct {
	Results []*RunResult `json:"results"`
}

// Failed counts the pairs that could not be scored.
func (sr *SuiteReport) Failed() int {
	n := 0
	for _, r := range sr.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Suite runs every configured (dataset, candidate) pair and collects the
// reports. Pairs are independent and run concurrently; a pair that fails to
// parse or match is recorded as failed without stopping its siblings.
type Suite struct {
	cfg    *Config
	runner Runner
	log    *slog.Logger
}

// SuiteOption mutates a Suite before it runs.
type SuiteOption func(*Suite)

// WithSuiteRunner overrides the default errgroup-backed runner.
func WithSuiteRunner(r Runner) SuiteOption {
	return func(s *Suite) { s.runner = r }
}

// WithSuiteLogger routes the suite's logging.
func WithSuiteLogger(log *slog.Logger) SuiteOption {
	return func(s *Suite) { s.log = log }
}

// NewSuite builds a suite from a validated configuration.
func NewSuite(cfg *Config, opts ...SuiteOption) *Suite {
	s := &Suite{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run evaluates all pairs and returns their results in configuration order.
func (s *Suite) Run(ctx context.Context) (*SuiteReport, error) {
	runner := s.runner
	if runner == nil {
		if s.cfg.Concurrency > 0 {
			runner = NewLimitedRunner(ctx, s.cfg.Concurrency)
		} else {
			runner = DefaultRunner(ctx)
		}
	}

	var total int
	for _, ds := range s.cfg.Datasets {
		total += len(ds.Candidates)
	}
	results := make([]*RunResult, total)

	var mu sync.Mutex
	slot := 0
	for _, ds := range s.cfg.Datasets {
		ds := ds
		opts := append(ds.options(s.cfg), WithLogger(s.log))
		for _, cand := range ds.Candidates {
			cand := cand
			idx := slot
			slot++
			runner.Go(func() error {
				res := s.runPair(ds, cand, opts)
				mu.Lock()
				results[idx] = res
				mu.Unlock()
				return nil
			})
		}
	}
	if err := runner.Wait(); err != nil {
		return nil, err
	}

	report := &SuiteReport{Results: results}
	s.log.Info("suite complete", "pairs", total, "failed", report.Failed())
	return report, nil
}

func (s *Suite) runPair(ds DatasetConfig, cand CandidateConfig, opts []Option) *RunResult {
	res := &RunResult{Dataset: ds.Name, Method: cand.Name}

	report, err := evaluateFiles(ds.Gold, cand.Path, opts)
	if err != nil {
		s.log.Error("pair failed", "dataset", ds.Name, "method", cand.Name, "error", err)
		res.Err = err
		res.Error = err.Error()
		return res
	}
	s.log.Info("pair scored",
		"dataset", ds.Name,
		"method", cand.Name,
		"matched", report.MatchedRecords,
		"accuracy", report.OverallAccuracy)
	res.Report = report
	return res
}

// EvaluateFiles loads a gold and a candidate file and scores them. This is
// the single-pair entry point the CLI uses.
func EvaluateFiles(goldPath, candidatePath string, opts ...Option) (*Report, error) {
	return evaluateFiles(goldPath, candidatePath, opts)
}

func evaluateFiles(goldPath, candidatePath string, opts []Option) (*Report, error) {
	gold, err := LoadGold(goldPath, opts...)
	if err != nil {
		return nil, err
	}
	candidate, err := LoadCandidate(candidatePath, opts...)
	if err != nil {
		return nil, err
	}
	return Evaluate(gold, candidate, opts...)
}
