package audit

import (
	"context"
	"strings"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// defaultFAQWords mark a frequently-asked-questions section.
var defaultFAQWords = []string{"faq", "často kladené otázky", "otázky a odpovede"}

// FAQCriterion checks for a FAQ section, either as a heading or anywhere
// in the body text.
type FAQCriterion struct {
	words *WordSet
}

// NewFAQCriterion creates the criterion.
func NewFAQCriterion() *FAQCriterion {
	return &FAQCriterion{words: NewWordSet(defaultFAQWords...)}
}

// Meta describes the criterion.
func (c *FAQCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionFAQ,
		Label:       "FAQ",
		Description: "The article has a frequently-asked-questions section.",
	}
}

// Evaluate looks at headings first, then the body text.
func (c *FAQCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	headingTexts := make([]string, 0, len(s.Article.Headings))
	for _, h := range s.Article.Headings {
		headingTexts = append(headingTexts, h.Text)
	}

	if c.words.Matches(strings.Join(headingTexts, " ")) {
		return pass(domain.CriterionFAQ, "FAQ heading found"), nil
	}
	if c.words.Matches(s.Article.Body) {
		return pass(domain.CriterionFAQ, "FAQ section mentioned in body text"), nil
	}
	return fail(domain.CriterionFAQ, "no FAQ heading or mention in body", "Pridať F&Q sekciu."), nil
}
