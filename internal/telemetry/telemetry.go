// Package telemetry provides OpenTelemetry instrumentation for the audit service.
// It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gymbeam/geoaudit/internal/domain"
)

const serviceName = "geoaudit"

// Metrics holds all audit Prometheus metrics
type Metrics struct {
	// Audit metrics
	AuditsTotal    prometheus.Counter
	AuditDuration  prometheus.Histogram
	AuditScore     prometheus.Histogram
	CriterionTotal *prometheus.CounterVec
	BatchSize      prometheus.Histogram

	// Fetch metrics
	ArticlesFetched prometheus.Counter
	FetchFailed     *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAuditMetrics(m)
	initFetchMetrics(m)
	return m
}

func initAuditMetrics(m *Metrics) {
	m.AuditsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoaudit_audits_total",
		Help: "Total articles audited",
	})

	m.AuditDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoaudit_audit_duration_seconds",
		Help:    "Time to audit a single article",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	})

	m.AuditScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoaudit_audit_score",
		Help:    "Checklist score per audited article",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	})

	m.CriterionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geoaudit_criterion_verdicts_total",
		Help: "Verdicts per criterion and status (pass, fail, error)",
	}, []string{"criterion", "status"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoaudit_batch_size",
		Help:    "Number of articles per audit batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
}

func initFetchMetrics(m *Metrics) {
	m.ArticlesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoaudit_articles_fetched_total",
		Help: "Total articles fetched from the content source",
	})

	m.FetchFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geoaudit_fetch_failed_total",
		Help: "Total fetch attempts that failed",
	}, []string{"reason"})

	m.FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoaudit_fetch_duration_seconds",
		Help:    "Time to fetch one page of articles",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
}

// RecordAudit records metrics for a single completed audit.
func (p *Provider) RecordAudit(ctx context.Context, report *domain.Report, duration time.Duration) {
	p.Metrics.AuditsTotal.Inc()
	p.Metrics.AuditDuration.Observe(duration.Seconds())
	p.Metrics.AuditScore.Observe(float64(report.Score))
	for _, v := range report.Verdicts {
		p.Metrics.CriterionTotal.WithLabelValues(string(v.CriterionID), string(v.Status)).Inc()
	}
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordFetch records a successful article fetch.
func (p *Provider) RecordFetch(ctx context.Context, count int, duration time.Duration) {
	p.Metrics.ArticlesFetched.Add(float64(count))
	p.Metrics.FetchDuration.Observe(duration.Seconds())
}

// RecordFetchFailure records a failed fetch with a reason label.
func (p *Provider) RecordFetchFailure(ctx context.Context, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	p.Metrics.FetchFailed.WithLabelValues(reason).Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
