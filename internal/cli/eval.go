package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vivaneiona/structeval"
)

var (
	evalFormat        string
	evalOutput        string
	evalIDField       string
	evalCandIDField   string
	evalPositional    bool
	evalCaseSensitive bool
	evalUnordered     bool
	evalScoreMissing  bool
	evalRepair        bool
	evalMismatchLimit int
)

var evalCmd = &cobra.Command{
	Use:   "eval GOLD CANDIDATE",
	Short: "Score one candidate file against one gold file",
	Long: `Reads a gold collection and a candidate collection, aligns records by id
(or position), compares every field, and prints the accuracy report.

The exit code is non-zero when either file cannot be parsed as records or
when no record could be matched between the two collections.`,
	Example: `  # Default id field (record_id), text report
  structeval eval gold.json structured_output_baml.json

  # Candidate nests its id, machine-readable output
  structeval eval gold.json out.json --candidate-id-field patient.record_id --format json

  # Rescue malformed candidate lines before dropping them
  structeval eval gold.json out.json --repair`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := structeval.EvaluateFiles(args[0], args[1], evalOptions()...)
		if err != nil {
			return err
		}

		var rendered string
		switch evalFormat {
		case "text":
			rendered = report.FormatText(evalMismatchLimit)
		case "json":
			rendered, err = report.FormatJSON()
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want text or json)", evalFormat)
		}

		return writeOutput(evalOutput, rendered)
	},
}

func evalOptions() []structeval.Option {
	opts := []structeval.Option{
		structeval.WithIDField(evalIDField),
		structeval.WithMismatchDisplayLimit(evalMismatchLimit),
	}
	if evalCandIDField != "" {
		opts = append(opts, structeval.WithCandidateIDField(evalCandIDField))
	}
	if evalPositional {
		opts = append(opts, structeval.WithPositional())
	}
	if evalCaseSensitive {
		opts = append(opts, structeval.WithCaseSensitive())
	}
	if evalUnordered {
		opts = append(opts, structeval.WithUnorderedScalarSequences())
	}
	if evalScoreMissing {
		opts = append(opts, structeval.WithScoreMissingRecords())
	}
	if evalRepair {
		opts = append(opts, structeval.WithRepair())
	}
	return opts
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFormat, "format", "f", "text", "report format (text, json)")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "write the report to a file instead of stdout")
	evalCmd.Flags().StringVar(&evalIDField, "id-field", structeval.DefaultIDField, "dotted path of the record id")
	evalCmd.Flags().StringVar(&evalCandIDField, "candidate-id-field", "", "id path inside candidate records, when it differs from --id-field")
	evalCmd.Flags().BoolVar(&evalPositional, "positional", false, "align records by position instead of id")
	evalCmd.Flags().BoolVar(&evalCaseSensitive, "case-sensitive", false, "compare text byte-exact instead of case-folded")
	evalCmd.Flags().BoolVar(&evalUnordered, "unordered-lists", false, "compare scalar lists as sets")
	evalCmd.Flags().BoolVar(&evalScoreMissing, "score-missing", false, "count unmatched gold records as all-field misses")
	evalCmd.Flags().BoolVar(&evalRepair, "repair", false, "attempt JSON repair on unparseable candidate records")
	evalCmd.Flags().IntVar(&evalMismatchLimit, "mismatch-limit", 10, "mismatch indices shown per field, 0 for all")
}
