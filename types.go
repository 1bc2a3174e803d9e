package structeval

import "log/slog"

// DefaultIDField is the record identifier used when none is configured.
const DefaultIDField = "record_id"

// defaultMismatchDisplay caps how many mismatch indices the text renderer
// prints per field. The accumulator itself is never capped.
const defaultMismatchDisplay = 10

// NormalizerBinding attaches a text normalizer to the fields whose path ends
// with Field. Sequence indices are ignored when matching, so "address.line"
// also covers "practitioner[2].address.line".
type NormalizerBinding struct {
	Field     string
	Normalize NormalizeFunc
}

// Options represents the evaluation policy knobs.
type Options struct {
	GoldIDField      string // dotted path to the id inside a gold record
	CandidateIDField string // dotted path inside a candidate record, defaults to GoldIDField
	Positional       bool   // align by index instead of id

	CaseSensitive            bool // keep text comparison byte-exact
	UnorderedScalarSequences bool // compare scalar sequences as sets instead of exact order
	ScoreMissingRecords      bool // score unmatched gold records as all-field misses instead of dropping them
	Repair                   bool // run jsonrepair on candidate records that fail to parse

	Normalizers   []NormalizerBinding
	MismatchLimit int // display cap for mismatch lists, <=0 means unlimited

	Log *slog.Logger
}

func buildOptions(opts []Option) *Options {
	o := &Options{
		GoldIDField:   DefaultIDField,
		MismatchLimit: defaultMismatchDisplay,
		Log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.CandidateIDField == "" {
		o.CandidateIDField = o.GoldIDField
	}
	if o.Log == nil {
		o.Log = slog.Default()
	}
	return o
}

// Option mutates Options.
type Option func(*Options)

// WithIDField sets the dotted path of the record identifier in both
// collections, e.g. "record_id".
func WithIDField(path string) Option {
	return func(o *Options) { o.GoldIDField = path }
}

// WithCandidateIDField overrides the identifier path for candidate records
// only. Extraction output sometimes nests the id, e.g. "patient.record_id".
func WithCandidateIDField(path string) Option {
	return func(o *Options) { o.CandidateIDField = path }
}

// WithPositional aligns records by collection index instead of an id field.
func WithPositional() Option {
	return func(o *Options) { o.Positional = true }
}

// WithCaseSensitive disables the default case-folding and trimming of text
// values before comparison.
func WithCaseSensitive() Option {
	return func(o *Options) { o.CaseSensitive = true }
}

// WithUnorderedScalarSequences compares sequences of scalars as sets. The
// default is exact order-sensitive equality.
func WithUnorderedScalarSequences() Option {
	return func(o *Options) { o.UnorderedScalarSequences = true }
}

// WithScoreMissingRecords counts every gold-valued field of an unmatched gold
// record as a mismatch. The default drops unmatched records and scores only
// the intersection, which flatters candidates that failed to produce output
// for some records.
func WithScoreMissingRecords() Option {
	return func(o *Options) { o.ScoreMissingRecords = true }
}

// WithRepair attempts a JSON repair pass on candidate records that fail to
// parse before dropping them. Off by default so accuracy numbers stay
// comparable between runs.
func WithRepair() Option {
	return func(o *Options) { o.Repair = true }
}

// WithNormalizer applies fn to text values of fields whose path ends with
// field before they are compared.
func WithNormalizer(field string, fn NormalizeFunc) Option {
	return func(o *Options) {
		o.Normalizers = append(o.Normalizers, NormalizerBinding{Field: field, Normalize: fn})
	}
}

// WithMismatchDisplayLimit caps how many mismatch indices the text renderer
// shows per field. Zero or negative means unlimited.
func WithMismatchDisplayLimit(n int) Option {
	return func(o *Options) { o.MismatchLimit = n }
}

// WithLogger routes the evaluator's debug logging.
func WithLogger(log *slog.Logger) Option {
	return func(o *Options) { o.Log = log }
}

// normalizeText runs the bound normalizers for path over a text value.
func (o *Options) normalizeText(path, s string) string {
	base := stripIndexes(path)
	for _, b := range o.Normalizers {
		if pathMatches(base, b.Field) {
			s = b.Normalize(s)
		}
	}
	return s
}

func pathMatches(base, field string) bool {
	if base == field {
		return true
	}
	n := len(base) - len(field)
	return n > 0 && base[n-1] == '.' && base[n:] == field
}
