package audit

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// factsPattern matches a number followed by a measurement unit.
var factsPattern = regexp.MustCompile(`(?i)\d+\s?(mg|g|kg|%|kcal|ml|mcg|gramov|miligramov)`)

// FactsCriterion requires a minimum number of numeric facts with units so
// the article carries verifiable data instead of vague claims.
type FactsCriterion struct {
	min int
}

// NewFactsCriterion creates the criterion with a minimum fact count.
func NewFactsCriterion(minFacts int) *FactsCriterion {
	return &FactsCriterion{min: minFacts}
}

// Meta describes the criterion.
func (c *FactsCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionFacts,
		Label:       "Fakty/čísla",
		Description: fmt.Sprintf("The body contains at least %d numeric facts with units.", c.min),
	}
}

// Evaluate counts unit-bearing numbers in the body.
func (c *FactsCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	count := len(factsPattern.FindAllString(s.Article.Body, -1))
	if count >= c.min {
		return pass(domain.CriterionFacts, fmt.Sprintf("%d numeric facts with units found", count)), nil
	}
	return fail(
		domain.CriterionFacts,
		fmt.Sprintf("only %d numeric facts with units found, need %d", count, c.min),
		fmt.Sprintf("Pridať číselné údaje s jednotkami, v počte aspoň %d.", c.min-count),
	), nil
}
