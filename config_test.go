package structeval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const suiteYAML = `log_level: debug
format: json
output_dir: out
concurrency: 2
repair: true
mismatch_limit: 5
datasets:
  - name: patients
    gold: testdata/gold.json
    id_field: patient_id
    case_sensitive: true
    normalizers:
      - field: visit_date
        kind: date
    candidates:
      - name: baml
        path: testdata/baml.jsonl
      - name: dspy
        path: testdata/dspy.jsonl
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "structeval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, suiteYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.True(t, cfg.Repair)
	assert.Equal(t, 5, cfg.MismatchLimit)

	require.Len(t, cfg.Datasets, 1)
	ds := cfg.Datasets[0]
	assert.Equal(t, "patients", ds.Name)
	assert.Equal(t, "testdata/gold.json", ds.Gold)
	assert.Equal(t, "patient_id", ds.IDField)
	assert.True(t, ds.CaseSensitive)
	require.Len(t, ds.Normalizers, 1)
	assert.Equal(t, "visit_date", ds.Normalizers[0].Field)
	require.Len(t, ds.Candidates, 2)
	assert.Equal(t, "baml", ds.Candidates[0].Name)
}

func TestLoadConfigDefaults(t *testing.T) {
	minimal := `datasets:
  - name: d
    gold: gold.json
    candidates:
      - name: m
        path: cand.jsonl
`
	cfg, err := LoadConfig(writeConfig(t, minimal))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, defaultMismatchDisplay, cfg.MismatchLimit)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("STRUCTEVAL_FORMAT", "markdown")
	t.Setenv("STRUCTEVAL_CONCURRENCY", "8")

	cfg, err := LoadConfig(writeConfig(t, suiteYAML))
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, 8, cfg.Concurrency)
	// Unset variables keep the file's value.
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Datasets: []DatasetConfig{{
			Name:       "d",
			Gold:       "gold.json",
			Candidates: []CandidateConfig{{Name: "m", Path: "cand.jsonl"}},
		}}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no datasets", func(c *Config) { c.Datasets = nil }, "no datasets"},
		{"missing name", func(c *Config) { c.Datasets[0].Name = "" }, "missing name"},
		{"missing gold", func(c *Config) { c.Datasets[0].Gold = "" }, "missing gold"},
		{"no candidates", func(c *Config) { c.Datasets[0].Candidates = nil }, "no candidates"},
		{"candidate without path", func(c *Config) { c.Datasets[0].Candidates[0].Path = "" }, "name and path"},
		{"unknown normalizer", func(c *Config) {
			c.Datasets[0].Normalizers = []NormalizerConfig{{Field: "f", Kind: "zip"}}
		}, "unknown normalizer"},
		{"normalizer without field", func(c *Config) {
			c.Datasets[0].Normalizers = []NormalizerConfig{{Kind: "date"}}
		}, "needs a field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, valid().Validate())
}

func TestDatasetOptions(t *testing.T) {
	cfg := &Config{Repair: true, MismatchLimit: 3}
	ds := &DatasetConfig{
		IDField:      "patient_id",
		ScoreMissing: true,
		Normalizers:  []NormalizerConfig{{Field: "state", Kind: "state"}},
	}

	o := buildOptions(ds.options(cfg))
	assert.Equal(t, "patient_id", o.GoldIDField)
	assert.Equal(t, "patient_id", o.CandidateIDField)
	assert.True(t, o.ScoreMissingRecords)
	assert.True(t, o.Repair)
	assert.Equal(t, 3, o.MismatchLimit)
	require.Len(t, o.Normalizers, 1)
	assert.Equal(t, "state", o.Normalizers[0].Field)
}
