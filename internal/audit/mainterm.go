package audit

import (
	"strings"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// maxTermWords is how many words the left-hand side of a colon title may
// have and still be treated as a reliable term.
const maxTermWords = 2

// TermExtractor derives the MainTerm of an article from its title.
//
// The only recognized shape is a colon title: "Kreatín: Čo je to a ako
// funguje?" yields the term "Kreatín". Anything else yields an unknown
// term; callers must not assume a term exists.
type TermExtractor struct {
	stopTerms map[string]struct{}
}

// NewTermExtractor creates an extractor. stopTerms are left-hand phrases
// that look like terms but are series labels ("Fitness recept: ..."); they
// yield an unknown term instead.
func NewTermExtractor(stopTerms []string) *TermExtractor {
	set := make(map[string]struct{}, len(stopTerms))
	for _, t := range stopTerms {
		t = normalizeText(t)
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return &TermExtractor{stopTerms: set}
}

// Extract derives the main term from a title. Deterministic and
// side-effect free: the same title always yields the same result. Only the
// first colon is considered; text after it is ignored.
func (e *TermExtractor) Extract(title string) domain.MainTerm {
	unknown := domain.MainTerm{Confidence: domain.TermUnknown}

	before, _, found := strings.Cut(title, ":")
	if !found {
		return unknown
	}

	candidate := NormalizeSpace(before)
	if candidate == "" {
		return unknown
	}
	if len(strings.Fields(candidate)) > maxTermWords {
		return unknown
	}
	if _, stopped := e.stopTerms[normalizeText(candidate)]; stopped {
		return unknown
	}

	return domain.MainTerm{Term: candidate, Confidence: domain.TermExplicit}
}
