package audit

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// WordCountCriterion requires a minimum body length in words.
type WordCountCriterion struct {
	min int
}

// NewWordCountCriterion creates the criterion with a minimum word count.
func NewWordCountCriterion(minWords int) *WordCountCriterion {
	return &WordCountCriterion{min: minWords}
}

// Meta describes the criterion.
func (c *WordCountCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionWordCount,
		Label:       "Dĺžka",
		Description: fmt.Sprintf("The body has at least %d words.", c.min),
	}
}

// Evaluate checks the word count taken from the rendered body.
func (c *WordCountCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	count := s.Article.WordCount
	if count >= c.min {
		return pass(domain.CriterionWordCount, fmt.Sprintf("%d words in body", count)), nil
	}
	return fail(
		domain.CriterionWordCount,
		fmt.Sprintf("only %d words in body, need %d", count, c.min),
		fmt.Sprintf("Článok nie je dostatočne dlhý, pridať aspoň %d slov.", c.min-count),
	), nil
}

// MetaDescriptionCriterion requires the meta description length to sit
// inside a configured band.
type MetaDescriptionCriterion struct {
	minLen int
	maxLen int
}

// NewMetaDescriptionCriterion creates the criterion with inclusive length
// bounds in characters.
func NewMetaDescriptionCriterion(minLen, maxLen int) *MetaDescriptionCriterion {
	return &MetaDescriptionCriterion{minLen: minLen, maxLen: maxLen}
}

// Meta describes the criterion.
func (c *MetaDescriptionCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionMetaDescription,
		Label:       "Meta description",
		Description: fmt.Sprintf("The meta description is %d to %d characters long.", c.minLen, c.maxLen),
	}
}

// Evaluate measures the trimmed meta description in runes.
func (c *MetaDescriptionCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	length := utf8.RuneCountInString(strings.TrimSpace(s.Article.MetaDescription))

	if length >= c.minLen && length <= c.maxLen {
		return pass(domain.CriterionMetaDescription, fmt.Sprintf("meta description is %d characters", length)), nil
	}
	if length < c.minLen {
		return fail(
			domain.CriterionMetaDescription,
			fmt.Sprintf("meta description is %d characters, minimum is %d", length, c.minLen),
			fmt.Sprintf("Meta popis je prikrátky, pridať aspoň %d znakov.", c.minLen-length),
		), nil
	}
	return fail(
		domain.CriterionMetaDescription,
		fmt.Sprintf("meta description is %d characters, maximum is %d", length, c.maxLen),
		fmt.Sprintf("Meta popis je pridlhý, ubrať aspoň %d znakov.", length-c.maxLen),
	), nil
}
