package processor

import (
	"context"
	"sync"
	"time"

	"github.com/gymbeam/geoaudit/internal/audit"
	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
)

const defaultConcurrency = 8

// BatchAuditor audits multiple articles in parallel using a worker pool.
type BatchAuditor struct {
	runner      *audit.Runner
	concurrency int
	logger      logging.Logger
}

// Result pairs one audited article with its report. Err is set when the
// article could not be audited at all (context cancellation); per-criterion
// faults stay inside the report as error-status verdicts.
type Result struct {
	Article *domain.Article
	Report  *domain.Report
	Err     error
}

// NewBatchAuditor creates a batch auditor with the given worker count.
func NewBatchAuditor(runner *audit.Runner, concurrency int, logger logging.Logger) *BatchAuditor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &BatchAuditor{
		runner:      runner,
		concurrency: concurrency,
		logger:      logger,
	}
}

type job struct {
	index   int
	article *domain.Article
}

// Process audits a batch of articles. Results come back in input order
// regardless of which worker finished first.
func (b *BatchAuditor) Process(ctx context.Context, articles []*domain.Article) []Result {
	if len(articles) == 0 {
		return []Result{}
	}

	b.logger.Info("starting batch audit",
		logging.Int("batch_size", len(articles)),
		logging.Int("concurrency", b.concurrency),
	)

	start := time.Now()

	jobs := make(chan job, len(articles))
	results := make([]Result, len(articles))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, results, &wg)
	}

	for i, a := range articles {
		jobs <- job{index: i, article: a}
	}
	close(jobs)
	wg.Wait()

	audited := 0
	for _, r := range results {
		if r.Err == nil && r.Report != nil {
			audited++
		}
	}

	b.logger.Info("batch audit complete",
		logging.Int("total", len(articles)),
		logging.Int("audited", audited),
		logging.Duration("duration", time.Since(start)),
	)

	return results
}

func (b *BatchAuditor) worker(ctx context.Context, jobs <-chan job, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			results[j.index] = Result{Article: j.article, Err: ctx.Err()}
			continue
		default:
		}

		results[j.index] = Result{
			Article: j.article,
			Report:  b.runner.Audit(ctx, j.article),
		}
	}
}

// Concurrency returns the configured worker count.
func (b *BatchAuditor) Concurrency() int {
	return b.concurrency
}
