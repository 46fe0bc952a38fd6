// Package audit implements the GEO checklist engine: pattern matchers,
// criterion evaluators and the checklist runner that turns one article
// into one report.
package audit

import (
	"context"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// Criterion is one independently testable checklist rule. Evaluators
// receive the subject read-only and must not mutate shared state.
type Criterion interface {
	// Meta describes the criterion for registries and reports.
	Meta() domain.CriterionMeta
	// Evaluate judges one article. A returned error, or a panic, marks the
	// verdict as an error state without aborting the rest of the checklist.
	Evaluate(ctx context.Context, s *Subject) (domain.Verdict, error)
}

// pass builds a passing verdict.
func pass(id domain.CriterionID, rationale string) domain.Verdict {
	return domain.Verdict{
		CriterionID: id,
		Status:      domain.StatusPass,
		Rationale:   rationale,
	}
}

// fail builds a failing verdict with a reader-facing recommendation.
func fail(id domain.CriterionID, rationale, recommendation string) domain.Verdict {
	return domain.Verdict{
		CriterionID:    id,
		Status:         domain.StatusFail,
		Rationale:      rationale,
		Recommendation: recommendation,
	}
}
