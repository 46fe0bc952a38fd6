package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordAudit(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	report := &domain.Report{
		Score:    7,
		MaxScore: 10,
		Verdicts: []domain.Verdict{
			{CriterionID: domain.CriterionDefinition, Status: domain.StatusPass},
			{CriterionID: domain.CriterionSources, Status: domain.StatusFail},
			{CriterionID: domain.CriterionTables, Status: domain.StatusError},
		},
	}

	// Should not panic
	provider.RecordAudit(ctx, report, 100*time.Millisecond)
	provider.RecordBatchSize(25)
}

func TestRecordFetch(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordFetch(ctx, 50, 2*time.Second)
	provider.RecordFetchFailure(ctx, "timeout")
	provider.RecordFetchFailure(ctx, "")
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "test-span")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	span.End()
}
