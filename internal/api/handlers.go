package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gymbeam/geoaudit/internal/article"
	"github.com/gymbeam/geoaudit/internal/audit"
	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
	"github.com/gymbeam/geoaudit/internal/processor"
	"github.com/gymbeam/geoaudit/internal/storage"
	"github.com/gymbeam/geoaudit/internal/telemetry"
)

const defaultListLimit = 20

// Handler handles HTTP requests for the audit API
type Handler struct {
	runner       *audit.Runner
	batchAuditor *processor.BatchAuditor
	reports      *storage.ReportRepository
	telemetry    *telemetry.Provider
	logger       logging.Logger
}

// NewHandler creates a new API handler. The report repository and telemetry
// provider are optional; without a repository persistence is rejected.
func NewHandler(
	runner *audit.Runner,
	batchAuditor *processor.BatchAuditor,
	reports *storage.ReportRepository,
	provider *telemetry.Provider,
	logger logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		runner:       runner,
		batchAuditor: batchAuditor,
		reports:      reports,
		telemetry:    provider,
		logger:       logger,
	}
}

// Audit handles POST /api/v1/audit
func (h *Handler) Audit(c *gin.Context) {
	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid audit request", logging.Err(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := article.FromHTML(req.ArticleID, req.URL, req.Title, req.BodyHTML, req.MetaDescription)
	if err != nil {
		h.logger.Warn("failed to parse article body",
			logging.Int("article_id", req.ArticleID),
			logging.Err(err),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.telemetry != nil {
		var span trace.Span
		ctx, span = h.telemetry.StartSpan(ctx, "audit.article",
			attribute.Int("article.id", a.ID),
		)
		defer span.End()
	}

	start := time.Now()
	report := h.runner.Audit(ctx, a)
	if h.telemetry != nil {
		h.telemetry.RecordAudit(ctx, report, time.Since(start))
	}

	if req.Persist {
		if err := h.persist(c, report); err != nil {
			return
		}
	}

	h.logger.Info("article audited",
		logging.Int("article_id", a.ID),
		logging.Int("score", report.Score),
		logging.Int("max_score", report.MaxScore),
	)

	c.JSON(http.StatusOK, AuditResponse{Report: toReportResponse(report)})
}

// AuditBatch handles POST /api/v1/audit/batch
func (h *Handler) AuditBatch(c *gin.Context) {
	var req BatchAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch audit request", logging.Err(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articles := make([]*domain.Article, 0, len(req.Articles))
	for _, item := range req.Articles {
		a, err := article.FromHTML(item.ArticleID, item.URL, item.Title, item.BodyHTML, item.MetaDescription)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      err.Error(),
				"article_id": item.ArticleID,
			})
			return
		}
		articles = append(articles, a)
	}

	ctx := c.Request.Context()
	if h.telemetry != nil {
		var span trace.Span
		ctx, span = h.telemetry.StartSpan(ctx, "audit.batch",
			attribute.Int("batch.size", len(articles)),
		)
		defer span.End()
		h.telemetry.RecordBatchSize(len(articles))
	}

	results := h.batchAuditor.Process(ctx, articles)

	responses := make([]*ReportResponse, 0, len(results))
	failed := 0
	for _, result := range results {
		if result.Err != nil || result.Report == nil {
			failed++
			continue
		}
		if req.Persist {
			if err := h.persist(c, result.Report); err != nil {
				return
			}
		}
		responses = append(responses, toReportResponse(result.Report))
	}

	c.JSON(http.StatusOK, BatchAuditResponse{
		Reports: responses,
		Total:   len(results),
		Failed:  failed,
	})
}

// GetReport handles GET /api/v1/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report storage not configured"})
		return
	}

	id := c.Param("id")
	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.logger.Error("failed to load report", logging.String("report_id", id), logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	c.JSON(http.StatusOK, AuditResponse{Report: toReportResponse(report)})
}

// ListReports handles GET /api/v1/reports
// Optional query parameters: article_id filters by article, limit caps the
// result count.
func (h *Handler) ListReports(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report storage not configured"})
		return
	}

	ctx := c.Request.Context()

	if raw := c.Query("article_id"); raw != "" {
		articleID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article_id"})
			return
		}
		reports, err := h.reports.ListByArticle(ctx, articleID)
		if err != nil {
			h.logger.Error("failed to list reports", logging.Int("article_id", articleID), logging.Err(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
			return
		}
		h.writeReportList(c, reports)
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	reports, err := h.reports.ListRecent(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list recent reports", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	h.writeReportList(c, reports)
}

// ListCriteria handles GET /api/v1/criteria
func (h *Handler) ListCriteria(c *gin.Context) {
	criteria := h.runner.Criteria()
	c.JSON(http.StatusOK, CriteriaResponse{
		Criteria: criteria,
		Total:    len(criteria),
	})
}

// GetAllowlist handles GET /api/v1/allowlist
func (h *Handler) GetAllowlist(c *gin.Context) {
	hosts := h.runner.Allowlist().Hosts()
	c.JSON(http.StatusOK, AllowlistResponse{
		Hosts: hosts,
		Total: len(hosts),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "storage": "disabled"})
		return
	}
	if err := h.reports.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) persist(c *gin.Context, report *domain.Report) error {
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report storage not configured"})
		return errors.New("report storage not configured")
	}
	if err := h.reports.Save(c.Request.Context(), report); err != nil {
		h.logger.Error("failed to persist report",
			logging.String("report_id", report.ID),
			logging.Err(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist report"})
		return err
	}
	return nil
}

func (h *Handler) writeReportList(c *gin.Context, reports []*domain.Report) {
	responses := make([]*ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, toReportResponse(r))
	}
	c.JSON(http.StatusOK, ReportsListResponse{
		Reports: responses,
		Total:   len(responses),
	})
}
