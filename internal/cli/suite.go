package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vivaneiona/structeval"
)

var (
	suiteConfig string
	suiteFormat string
	suiteOutput string
)

var suiteCmd = &cobra.Command{
	Use:   "suite",
	Short: "Score every configured dataset/method pair",
	Long: `Runs the full benchmark described by a yaml configuration: for each dataset,
every candidate output is scored against the dataset's gold file. Pairs run
concurrently; a pair that fails to parse or match is reported and makes the
exit code non-zero without stopping the others.

Top-level settings can be overridden from the environment, e.g.
STRUCTEVAL_CONCURRENCY=2 or STRUCTEVAL_REPAIR=true.`,
	Example: `  # structeval.yaml in the working directory
  structeval suite

  # Explicit config, JSON results into a directory
  structeval suite -c bench.yaml --format json -o results/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := structeval.LoadConfig(suiteConfig)
		if err != nil {
			return err
		}
		if suiteFormat != "" {
			cfg.Format = suiteFormat
		}
		if suiteOutput != "" {
			cfg.OutputDir = suiteOutput
		}
		configureLogging(cfg.LogLevel)

		suite := structeval.NewSuite(cfg, structeval.WithSuiteLogger(slog.Default()))
		results, err := suite.Run(cmd.Context())
		if err != nil {
			return err
		}

		var rendered string
		switch cfg.Format {
		case "markdown":
			rendered, err = results.FormatMarkdown()
		case "json":
			rendered, err = results.FormatJSON()
		default:
			err = fmt.Errorf("unknown format %q (want markdown or json)", cfg.Format)
		}
		if err != nil {
			return err
		}

		dest := ""
		if cfg.OutputDir != "" {
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			name := "results.md"
			if cfg.Format == "json" {
				name = "results.json"
			}
			dest = filepath.Join(cfg.OutputDir, name)
		}
		if err := writeOutput(dest, rendered); err != nil {
			return err
		}

		if failed := results.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d pairs failed", failed, len(results.Results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suiteCmd)

	suiteCmd.Flags().StringVarP(&suiteConfig, "config", "c", "structeval.yaml", "suite configuration file")
	suiteCmd.Flags().StringVarP(&suiteFormat, "format", "f", "", "result format (markdown, json); overrides the config")
	suiteCmd.Flags().StringVarP(&suiteOutput, "output-dir", "o", "", "directory for result files; overrides the config")
}
