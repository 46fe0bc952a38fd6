package processor

import (
	"context"
	"fmt"
	"testing"

	"github.com/gymbeam/geoaudit/internal/audit"
	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
)

func batchArticles(n int) []*domain.Article {
	articles := make([]*domain.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, &domain.Article{
			ID:    i + 1,
			Title: fmt.Sprintf("Kreatín: článok %d", i+1),
			Body:  "Kreatín je organická zlúčenina.",
		})
	}
	return articles
}

func TestBatchProcessKeepsInputOrder(t *testing.T) {
	runner := audit.NewRunner(logging.Nop(), audit.Config{})
	batch := NewBatchAuditor(runner, 4, nil)

	articles := batchArticles(25)
	results := batch.Process(context.Background(), articles)

	if len(results) != len(articles) {
		t.Fatalf("got %d results, want %d", len(results), len(articles))
	}
	for i, result := range results {
		if result.Err != nil {
			t.Fatalf("result %d errored: %v", i, result.Err)
		}
		if result.Article.ID != articles[i].ID {
			t.Errorf("result %d holds article %d, want %d", i, result.Article.ID, articles[i].ID)
		}
		if result.Report == nil || result.Report.ArticleID != articles[i].ID {
			t.Errorf("result %d report does not match its article", i)
		}
	}
}

func TestBatchProcessEmpty(t *testing.T) {
	runner := audit.NewRunner(logging.Nop(), audit.Config{})
	batch := NewBatchAuditor(runner, 4, nil)

	results := batch.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("empty input should yield empty results, got %d", len(results))
	}
}

func TestBatchProcessCancelledContext(t *testing.T) {
	runner := audit.NewRunner(logging.Nop(), audit.Config{})
	batch := NewBatchAuditor(runner, 2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := batch.Process(ctx, batchArticles(10))
	if len(results) != 10 {
		t.Fatalf("got %d results, want 10", len(results))
	}
	for i, result := range results {
		if result.Err == nil {
			t.Errorf("result %d should carry the context error", i)
		}
		if result.Report != nil {
			t.Errorf("result %d should have no report after cancellation", i)
		}
	}
}

func TestBatchConcurrencyDefault(t *testing.T) {
	runner := audit.NewRunner(logging.Nop(), audit.Config{})

	if got := NewBatchAuditor(runner, 0, nil).Concurrency(); got != defaultConcurrency {
		t.Errorf("zero concurrency should fall back to %d, got %d", defaultConcurrency, got)
	}
	if got := NewBatchAuditor(runner, -3, nil).Concurrency(); got != defaultConcurrency {
		t.Errorf("negative concurrency should fall back to %d, got %d", defaultConcurrency, got)
	}
	if got := NewBatchAuditor(runner, 2, nil).Concurrency(); got != 2 {
		t.Errorf("Concurrency() = %d, want 2", got)
	}
}
