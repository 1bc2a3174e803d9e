package structeval

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides, e.g.
// STRUCTEVAL_CONCURRENCY=4.
const envPrefix = "structeval"

// Config describes a suite run: which datasets to score, which candidate
// outputs to score them against, and the shared policy settings. Values are
// resolved defaults first, then the yaml file, then environment overrides.
type Config struct {
	LogLevel      string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	Format        string `yaml:"format" envconfig:"FORMAT"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Concurrency   int    `yaml:"concurrency" envconfig:"CONCURRENCY"`
	Repair        bool   `yaml:"repair" envconfig:"REPAIR"`
	MismatchLimit int    `yaml:"mismatch_limit" envconfig:"MISMATCH_LIMIT"`

	Datasets []DatasetConfig `yaml:"datasets"`
}

// DatasetConfig binds one gold file to the candidate outputs produced for it.
type DatasetConfig struct {
	Name             string             `yaml:"name"`
	Gold             string             `yaml:"gold"`
	IDField          string             `yaml:"id_field"`
	CandidateIDField string             `yaml:"candidate_id_field"`
	Positional       bool               `yaml:"positional"`
	CaseSensitive    bool               `yaml:"case_sensitive"`
	UnorderedLists   bool               `yaml:"unordered_lists"`
	ScoreMissing     bool               `yaml:"score_missing"`
	Normalizers      []NormalizerConfig `yaml:"normalizers"`
	Candidates       []CandidateConfig  `yaml:"candidates"`
}

// CandidateConfig names one extraction method's output file.
type CandidateConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// NormalizerConfig binds a built-in normalizer to a field path suffix.
type NormalizerConfig struct {
	Field string `yaml:"field"`
	Kind  string `yaml:"kind"`
}

// DefaultConfig returns the settings used when the yaml file leaves them out.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		Format:        "markdown",
		Concurrency:   0, // 0 → CPU count
		MismatchLimit: defaultMismatchDisplay,
	}
}

// LoadConfig reads a suite configuration file and applies environment
// overrides on top of it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that would fail mid-run.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets configured")
	}
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset %d: missing name", i)
		}
		if ds.Gold == "" {
			return fmt.Errorf("dataset %q: missing gold path", ds.Name)
		}
		if len(ds.Candidates) == 0 {
			return fmt.Errorf("dataset %q: no candidates configured", ds.Name)
		}
		for j, cand := range ds.Candidates {
			if cand.Name == "" || cand.Path == "" {
				return fmt.Errorf("dataset %q: candidate %d needs both name and path", ds.Name, j)
			}
		}
		for _, n := range ds.Normalizers {
			if _, ok := NormalizerByName(n.Kind); !ok {
				return fmt.Errorf("dataset %q: unknown normalizer kind %q", ds.Name, n.Kind)
			}
			if n.Field == "" {
				return fmt.Errorf("dataset %q: normalizer %q needs a field", ds.Name, n.Kind)
			}
		}
	}
	return nil
}

// options translates a dataset's configuration into evaluator options.
func (d *DatasetConfig) options(c *Config) []Option {
	var opts []Option
	if d.IDField != "" {
		opts = append(opts, WithIDField(d.IDField))
	}
	if d.CandidateIDField != "" {
		opts = append(opts, WithCandidateIDField(d.CandidateIDField))
	}
	if d.Positional {
		opts = append(opts, WithPositional())
	}
	if d.CaseSensitive {
		opts = append(opts, WithCaseSensitive())
	}
	if d.UnorderedLists {
		opts = append(opts, WithUnorderedScalarSequences())
	}
	if d.ScoreMissing {
		opts = append(opts, WithScoreMissingRecords())
	}
	if c.Repair {
		opts = append(opts, WithRepair())
	}
	if c.MismatchLimit != 0 {
		opts = append(opts, WithMismatchDisplayLimit(c.MismatchLimit))
	}
	for _, n := range d.Normalizers {
		fn, _ := NormalizerByName(n.Kind)
		opts = append(opts, WithNormalizer(n.Field, fn))
	}
	return opts
}
