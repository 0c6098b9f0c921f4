package service

import (
	"fmt"
	"strings"

	"github.com/olusolaa/netbox-reconciler/internal/core/domain"
	"github.com/olusolaa/netbox-reconciler/pkg/convert"
)

const (
	alreadyExistsText = "already exists"
	isRequiredText    = "is required"
)

// ClassifierPolicy tunes how validation conflicts are reported.
type ClassifierPolicy struct {
	// StrictConflicts reports uniqueness conflicts and non-field errors as
	// failures instead of no-ops.
	StrictConflicts bool
}

// Classify applies the default, tolerant policy.
func Classify(resp domain.Object, action domain.Action) domain.Classification {
	return ClassifyWith(ClassifierPolicy{}, resp, action)
}

// ClassifyWith derives changed/failed from the response to a mutating call.
// Rules are evaluated in order and the first match wins:
//  1. a name or slug error saying the value already exists is a no-op;
//  2. any non_field_errors is a no-op;
//  3. a field whose first error says it is required is a failure;
//  4. anything else is a change.
//
// Deletes go through the same rules; a not-found answer is a change.
func ClassifyWith(policy ClassifierPolicy, resp domain.Object, action domain.Action) domain.Classification {
	if seqContains(resp[domain.KeyName], alreadyExistsText) || seqContains(resp[domain.KeySlug], alreadyExistsText) {
		return conflict(policy, domain.ReasonUniquenessClash)
	}

	if _, ok := resp[domain.KeyNonFieldErrors]; ok {
		return conflict(policy, domain.ReasonNonFieldErrors)
	}

	for _, value := range resp {
		seq, ok := asSeq(value)
		if ok && len(seq) > 0 && strings.Contains(text(seq[0]), isRequiredText) {
			return domain.Classification{Failed: true, Reason: domain.ReasonMissingRequired}
		}
	}

	return domain.Classification{Changed: true, Reason: domain.ReasonApplied}
}

func conflict(policy ClassifierPolicy, reason string) domain.Classification {
	return domain.Classification{Failed: policy.StrictConflicts, Reason: reason}
}

func seqContains(value any, substr string) bool {
	seq, ok := asSeq(value)
	if !ok {
		return false
	}
	for _, item := range seq {
		if strings.Contains(text(item), substr) {
			return true
		}
	}
	return false
}

func asSeq(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	seq, ok := convert.Normalize(value).([]any)
	return seq, ok
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
