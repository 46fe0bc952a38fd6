package audit

import (
	"sync"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// Subject is one article under audit plus state derived lazily during the
// pass. The article itself is read-only to every criterion; nothing on a
// Subject may be mutated by an evaluator, which keeps verdicts independent
// of criterion execution order.
type Subject struct {
	Article *domain.Article

	extractor *TermExtractor
	termOnce  sync.Once
	term      domain.MainTerm
}

// newSubject wraps an article for one audit pass.
func newSubject(a *domain.Article, extractor *TermExtractor) *Subject {
	return &Subject{Article: a, extractor: extractor}
}

// MainTerm returns the article's derived main term. It is computed on
// first use and cached for the remainder of the pass; the cached value is
// immutable.
func (s *Subject) MainTerm() domain.MainTerm {
	s.termOnce.Do(func() {
		s.term = s.extractor.Extract(s.Article.Title)
	})
	return s.term
}
