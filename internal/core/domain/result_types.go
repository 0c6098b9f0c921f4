package domain

// Classification is the verdict on an API response to a mutating call.
type Classification struct {
	Changed bool
	Failed  bool
	Reason  string
}

const (
	ReasonNoop            = "noop"
	ReasonPlanned         = "planned"
	ReasonApplied         = "applied"
	ReasonUniquenessClash = "uniqueness_conflict"
	ReasonNonFieldErrors  = "non_field_errors"
	ReasonMissingRequired = "missing_required_field"
)

// Outcome is what an invocation reports back to its caller.
type Outcome struct {
	Changed bool
	Failed  bool
	Result  any
	Action  Action
	Reason  string
	Diff    string
}

// Facts is the result of a read-only lookup.
type Facts struct {
	Changed bool
	Result  any
	Facts   map[string]any
}

// BatchResult is the outcome of one invocation of a manifest.
type BatchResult struct {
	Index    int
	Category Category
	Ref      ObjectRef
	Outcome  Outcome
	Err      error
}

// BatchSummary counts batch results by outcome.
type BatchSummary struct {
	Total     int
	Changed   int
	Unchanged int
	Failed    int
	Errors    int
}

func Summarize(results []BatchResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Errors++
		case r.Outcome.Failed:
			s.Failed++
		case r.Outcome.Changed:
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

func (s BatchSummary) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}
