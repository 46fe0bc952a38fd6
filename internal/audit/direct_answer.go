package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// defaultDeferralPhrases postpone the answer instead of giving it.
var defaultDeferralPhrases = []string{
	"v tomto článku",
	"poďme sa pozrieť",
	"dozviete sa",
	"povieme si",
}

// DirectAnswerCriterion checks that the opening paragraph answers the
// reader's question directly rather than deferring to the rest of the
// article.
type DirectAnswerCriterion struct {
	phrases *PhraseSet
}

// NewDirectAnswerCriterion creates the criterion. An empty phrase list
// selects the default deferral phrases.
func NewDirectAnswerCriterion(phrases []string) *DirectAnswerCriterion {
	if len(phrases) == 0 {
		phrases = defaultDeferralPhrases
	}
	return &DirectAnswerCriterion{phrases: NewPhraseSet(phrases...)}
}

// Meta describes the criterion.
func (c *DirectAnswerCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionDirectAnswer,
		Label:       "Priama odpoveď",
		Description: "The opening paragraph answers directly instead of deferring the answer.",
	}
}

// Evaluate scans the first paragraph for deferral phrases.
func (c *DirectAnswerCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	intro := normalizeText(s.Article.FirstParagraph)

	found := c.phrases.FindAll(intro)
	if len(found) == 0 {
		return pass(domain.CriterionDirectAnswer, "no deferral phrases in the opening paragraph"), nil
	}

	list := strings.Join(found, ", ")
	return fail(
		domain.CriterionDirectAnswer,
		fmt.Sprintf("opening paragraph defers the answer: %s", list),
		fmt.Sprintf("Odstrániť nechcené frázy (%s).", list),
	), nil
}
