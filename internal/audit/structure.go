package audit

import (
	"context"
	"fmt"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// HeadingsCriterion requires a minimum number of H2 headings so the
// article has a scannable section structure.
type HeadingsCriterion struct {
	min int
}

// NewHeadingsCriterion creates the criterion with a minimum H2 count.
func NewHeadingsCriterion(minHeadings int) *HeadingsCriterion {
	return &HeadingsCriterion{min: minHeadings}
}

// Meta describes the criterion.
func (c *HeadingsCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionHeadings,
		Label:       "H2 nadpisy",
		Description: fmt.Sprintf("The body has at least %d H2 headings.", c.min),
	}
}

// Evaluate counts level-2 headings.
func (c *HeadingsCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	count := s.Article.H2Count()
	if count >= c.min {
		return pass(domain.CriterionHeadings, fmt.Sprintf("%d H2 headings found", count)), nil
	}
	return fail(
		domain.CriterionHeadings,
		fmt.Sprintf("only %d H2 headings found, need %d", count, c.min),
		fmt.Sprintf("Pridať nadpisy, v počte aspoň %d.", c.min-count),
	), nil
}

// ListsCriterion requires at least one bulleted or numbered list.
type ListsCriterion struct{}

// NewListsCriterion creates the criterion.
func NewListsCriterion() *ListsCriterion {
	return &ListsCriterion{}
}

// Meta describes the criterion.
func (c *ListsCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionLists,
		Label:       "Zoznamy",
		Description: "The body contains at least one bulleted or numbered list.",
	}
}

// Evaluate checks the list counter taken from the rendered body.
func (c *ListsCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	if s.Article.ListCount > 0 {
		return pass(domain.CriterionLists, fmt.Sprintf("%d lists found", s.Article.ListCount)), nil
	}
	return fail(
		domain.CriterionLists,
		"no lists in body",
		"Pridať aspoň 1 odrážkový alebo očíslovaný zoznam.",
	), nil
}

// TablesCriterion requires at least one table.
type TablesCriterion struct{}

// NewTablesCriterion creates the criterion.
func NewTablesCriterion() *TablesCriterion {
	return &TablesCriterion{}
}

// Meta describes the criterion.
func (c *TablesCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{
		ID:          domain.CriterionTables,
		Label:       "Tabuľky",
		Description: "The body contains at least one table.",
	}
}

// Evaluate checks the table counter taken from the rendered body.
func (c *TablesCriterion) Evaluate(_ context.Context, s *Subject) (domain.Verdict, error) {
	if s.Article.TableCount > 0 {
		return pass(domain.CriterionTables, fmt.Sprintf("%d tables found", s.Article.TableCount)), nil
	}
	return fail(domain.CriterionTables, "no tables in body", "Pridať aspoň 1 tabuľku."), nil
}
