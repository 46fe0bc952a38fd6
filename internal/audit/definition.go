package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// definitionVerbs are the copula and definition verbs accepted directly
// after the main term ("is", "are", "means", "represents").
var definitionVerbs = []string{"je", "sú", "znamená", "predstavuje"}

// interrogativePhrases open a definition segment ("what is", "what are").
var interrogativePhrases = []string{"čo je", "čo sú"}

const recDefinition = "Pridať priamu definíciu hlavného pojmu."

// DefinitionCriterion decides whether the article defines its main term.
//
// Three branches, evaluated in priority order, first match wins:
//
//  1. The title yields an explicit term: the body must contain
//     "<term> <definition verb>". Bare copulas occur constantly in
//     ordinary prose, so the verb is only trusted when anchored to a
//     reliably extracted term.
//  2. No reliable term: an interrogative segment ("Čo je ...?") anywhere
//     in the headings or body passes outright. This is a recall safety
//     valve for articles whose titles yield no short term.
//  3. Neither: fail.
type DefinitionCriterion struct {
	verbs          []string
	interrogative  *PhraseSet
	foldDiacritics bool
}

// NewDefinitionCriterion creates the criterion. With foldDiacritics set,
// the term-anchored search ignores accent marks on both sides.
func NewDefinitionCriterion(foldDiacritics bool) *DefinitionCriterion {
	return &DefinitionCriterion{
		verbs:          definitionVerbs,
		interrogative:  NewPhraseSet(interrogativePhrases...),
		foldDiacritics: foldDiacritics,
	}
}

// Meta describes the criterion.
func (c *DefinitionCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionDefinition,
		Label:       "Definícia",
		Description: "The article contains an explicit definition of its main term.",
	}
}

// Evaluate applies the three-branch decision.
func (c *DefinitionCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	term := s.MainTerm()

	if term.Confidence == domain.TermExplicit {
		if matched, ok := c.findDefinitionSentence(s.Article.Body, term.Term); ok {
			return pass(
				domain.CriterionDefinition,
				fmt.Sprintf("definition sentence for term %q found (matched %q)", term.Term, matched),
			), nil
		}
		return fail(
			domain.CriterionDefinition,
			fmt.Sprintf("term %q extracted from title but no definition sentence in body", term.Term),
			recDefinition,
		), nil
	}

	if matched, ok := c.findInterrogative(s.Article); ok {
		return pass(
			domain.CriterionDefinition,
			fmt.Sprintf("interrogative definition segment found: %s", matched),
		), nil
	}

	return fail(
		domain.CriterionDefinition,
		"no reliable main term and no interrogative definition segment",
		recDefinition,
	), nil
}

// findDefinitionSentence looks for "<term> <verb>" in the normalized body.
func (c *DefinitionCriterion) findDefinitionSentence(body, term string) (string, bool) {
	haystack := normalizeText(body)
	needle := strings.ToLower(term)
	if c.foldDiacritics {
		haystack = FoldDiacritics(haystack)
		needle = FoldDiacritics(needle)
	}

	for _, verb := range c.verbs {
		if c.foldDiacritics {
			verb = FoldDiacritics(verb)
		}
		pattern := needle + " " + verb
		if strings.Contains(haystack, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// findInterrogative searches headings first, then the body.
func (c *DefinitionCriterion) findInterrogative(a *domain.Article) (string, bool) {
	for _, h := range a.Headings {
		if found := c.interrogative.FindAll(normalizeText(h.Text)); len(found) > 0 {
			return fmt.Sprintf("%q in heading %q", found[0], h.Text), true
		}
	}
	if found := c.interrogative.FindAll(normalizeText(a.Body)); len(found) > 0 {
		return fmt.Sprintf("%q in body", found[0]), true
	}
	return "", false
}
