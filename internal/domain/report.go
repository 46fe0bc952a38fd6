package domain

import "time"

// CriterionID identifies one GEO checklist criterion.
type CriterionID string

// Checklist criteria, in display order. The set is fixed per checklist version.
const (
	CriterionDirectAnswer    CriterionID = "direct_answer"
	CriterionDefinition      CriterionID = "definition"
	CriterionHeadings        CriterionID = "headings"
	CriterionFacts           CriterionID = "facts"
	CriterionSources         CriterionID = "sources"
	CriterionFAQ             CriterionID = "faq"
	CriterionLists           CriterionID = "lists"
	CriterionTables          CriterionID = "tables"
	CriterionWordCount       CriterionID = "word_count"
	CriterionMetaDescription CriterionID = "meta_description"
)

// VerdictStatus is the outcome of one criterion applied to one article.
type VerdictStatus string

const (
	StatusPass VerdictStatus = "pass"
	StatusFail VerdictStatus = "fail"
	// StatusError marks a criterion whose evaluator faulted internally.
	// Distinct from fail: the article was not judged, the evaluator broke.
	StatusError VerdictStatus = "error"
)

// CriterionMeta describes one registered criterion.
type CriterionMeta struct {
	ID          CriterionID `json:"id"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

// Verdict is the outcome of one criterion for one article. Immutable once produced.
type Verdict struct {
	CriterionID    CriterionID   `json:"criterion_id"`
	Status         VerdictStatus `json:"status"`
	Rationale      string        `json:"rationale"`
	Recommendation string        `json:"recommendation,omitempty"`
}

// Passed reports whether the verdict is a pass.
func (v Verdict) Passed() bool {
	return v.Status == StatusPass
}

// Report aggregates the verdicts of one audit pass over one article.
// A report is never mutated; re-evaluating an article produces a new one.
type Report struct {
	ID           string    `json:"id"`
	ArticleID    int       `json:"article_id"`
	ArticleURL   string    `json:"article_url"`
	ArticleTitle string    `json:"article_title"`
	Verdicts     []Verdict `json:"verdicts"`
	Score        int       `json:"score"`
	MaxScore     int       `json:"max_score"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Verdict returns the verdict for the given criterion, if present.
func (r *Report) Verdict(id CriterionID) (Verdict, bool) {
	for _, v := range r.Verdicts {
		if v.CriterionID == id {
			return v, true
		}
	}
	return Verdict{}, false
}

// Recommendations returns the recommendations of all non-passing verdicts,
// in display order.
func (r *Report) Recommendations() []string {
	recs := make([]string, 0, len(r.Verdicts))
	for _, v := range r.Verdicts {
		if !v.Passed() && v.Recommendation != "" {
			recs = append(recs, v.Recommendation)
		}
	}
	return recs
}
