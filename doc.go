// Package structeval scores structured-output extraction against a gold
// standard. It reads a gold JSON collection and one or more candidate
// collections produced by different extraction methods, aligns records by id
// or position, recursively compares every field, and aggregates per-field
// and overall accuracy with the indices of mismatching records.
//
// # Problem Statement
//
// Comparing extraction frameworks needs a referee that treats them all the
// same way. Extraction output is nested JSON of arbitrary depth, with
// sub-objects and repeated sub-entities, and naive whole-document equality
// collapses every disagreement into a single bit. structeval flattens each
// record into field paths ("patient.address.city", "insured[0].year") and
// scores every path independently, so a method that nails demographics but
// fumbles repeated entities shows exactly that.
//
// # Basic Usage
//
//	gold, err := structeval.LoadGold("gold.json")
//	candidate, err := structeval.LoadCandidate("structured_output.json")
//
//	report, err := structeval.Evaluate(gold, candidate,
//	    structeval.WithIDField("record_id"),
//	    structeval.WithCandidateIDField("patient.record_id"),
//	)
//	fmt.Print(report.FormatText(10))
//
// Candidate files may be a JSON array or newline-delimited JSON; the
// container format is sniffed. Candidate records that fail to parse are
// dropped from scoring rather than counted as all-field misses, optionally
// after a repair pass (WithRepair). Gold files are trusted and parse
// strictly.
//
// # Comparison Rules
//
//   - Mappings recurse with the path extended by ".key".
//   - Sequences of mappings recurse per index ("[0]", "[1]" and so on) and score a
//     synthetic "<path>.count" leaf for the sequence length, so a length
//     mismatch never suppresses scoring of the overlapping elements.
//   - Sequences of scalars compare whole, in order (WithUnorderedScalarSequences
//     switches to set semantics).
//   - Text compares trimmed and case-folded (WithCaseSensitive turns that
//     off), after any per-field normalizers (WithNormalizer) such as
//     NormalizeState or NormalizeDate.
//   - Gold null matches candidate null or absent; gold value against
//     candidate null or absent is a mismatch; differing types are a counted
//     mismatch, never an error.
//   - Candidate fields absent from the gold schema are ignored.
//
// # Suites
//
// A yaml configuration can bind several datasets to the candidate outputs of
// several methods; Suite scores every pair concurrently and renders a
// markdown comparison table:
//
//	cfg, err := structeval.LoadConfig("structeval.yaml")
//	suite := structeval.NewSuite(cfg)
//	results, err := suite.Run(ctx)
//	md, err := results.FormatMarkdown()
//
// The structeval command wraps both entry points; see cmd/structeval.
package structeval
