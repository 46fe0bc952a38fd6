package audit

import (
	"context"
	"fmt"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// defaultSourceSectionWords mark a source section in the body text.
var defaultSourceSectionWords = []string{"zdroje", "references", "štúdie"}

// SourcesCriterion decides whether the article cites acceptable external
// references. Only in-body hyperlinks are considered: bibliography blocks
// rendered outside the content API's body payload are not retrievable and
// therefore out of scope. Link liveness is likewise out of scope; only
// presence of a link to an allow-listed host counts.
type SourcesCriterion struct {
	allowlist    *Allowlist
	sectionWords *WordSet
}

// NewSourcesCriterion creates the criterion over the given allowlist.
func NewSourcesCriterion(allowlist *Allowlist) *SourcesCriterion {
	return &SourcesCriterion{
		allowlist:    allowlist,
		sectionWords: NewWordSet(defaultSourceSectionWords...),
	}
}

// Meta describes the criterion.
func (c *SourcesCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionSources,
		Label:       "Zdroje",
		Description: "The article links to approved reference material or carries a source section.",
	}
}

// Evaluate checks body links against the allowlist, then falls back to a
// source-section mention in the body text. An empty allowlist is valid
// configuration: the link check fails closed instead of erroring.
func (c *SourcesCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	if !c.allowlist.Empty() {
		for _, link := range s.Article.Links {
			if link.TargetHost == "" {
				continue
			}
			if c.allowlist.Contains(link.TargetHost) {
				return pass(
					domain.CriterionSources,
					fmt.Sprintf("link to allow-listed host %s (%s)", link.TargetHost, link.TargetURL),
				), nil
			}
		}
	}

	if c.sectionWords.Matches(s.Article.Body) {
		return pass(domain.CriterionSources, "source section mentioned in body text"), nil
	}

	rationale := "no link to an allow-listed host and no source section in body"
	if c.allowlist.Empty() {
		rationale = "allow-list is empty (failing closed); no source section in body"
	}
	return fail(domain.CriterionSources, rationale, `Pridať sekciu "Zdroje".`), nil
}
