package api

import (
	"time"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// AuditRequest represents a single audit request. The article HTML is
// parsed server-side; callers submit what the CMS stores.
type AuditRequest struct {
	ArticleID       int    `json:"article_id"`
	URL             string `json:"url"`
	Title           string `json:"title"     binding:"required"`
	BodyHTML        string `json:"body_html" binding:"required"`
	MetaDescription string `json:"meta_description"`
	Persist         bool   `json:"persist"`
}

// AuditResponse represents a single audit response.
type AuditResponse struct {
	Report *ReportResponse `json:"report"`
}

// BatchAuditRequest represents a batch audit request.
type BatchAuditRequest struct {
	Articles []AuditRequest `json:"articles" binding:"required,min=1,max=100"`
	Persist  bool           `json:"persist"`
}

// BatchAuditResponse represents a batch audit response.
type BatchAuditResponse struct {
	Reports []*ReportResponse `json:"reports"`
	Total   int               `json:"total"`
	Failed  int               `json:"failed"`
}

// ReportResponse represents one audit report.
type ReportResponse struct {
	ID              string           `json:"id"`
	ArticleID       int              `json:"article_id"`
	ArticleURL      string           `json:"article_url"`
	ArticleTitle    string           `json:"article_title"`
	Score           int              `json:"score"`
	MaxScore        int              `json:"max_score"`
	Verdicts        []domain.Verdict `json:"verdicts"`
	Recommendations []string         `json:"recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// ReportsListResponse represents a list of stored reports.
type ReportsListResponse struct {
	Reports []*ReportResponse `json:"reports"`
	Total   int               `json:"total"`
}

// CriteriaResponse lists the registered checklist criteria in display order.
type CriteriaResponse struct {
	Criteria []domain.CriterionMeta `json:"criteria"`
	Total    int                    `json:"total"`
}

// AllowlistResponse lists the hosts accepted as citation sources.
type AllowlistResponse struct {
	Hosts []string `json:"hosts"`
	Total int      `json:"total"`
}

// toReportResponse converts a domain report to an API response.
func toReportResponse(r *domain.Report) *ReportResponse {
	return &ReportResponse{
		ID:              r.ID,
		ArticleID:       r.ArticleID,
		ArticleURL:      r.ArticleURL,
		ArticleTitle:    r.ArticleTitle,
		Score:           r.Score,
		MaxScore:        r.MaxScore,
		Verdicts:        r.Verdicts,
		Recommendations: r.Recommendations(),
		GeneratedAt:     r.GeneratedAt,
	}
}
