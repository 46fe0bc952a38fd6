// Command auditor runs the GEO checklist over blog articles from the
// command line and writes CSV and HTML reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gymbeam/geoaudit/internal/article"
	"github.com/gymbeam/geoaudit/internal/audit"
	"github.com/gymbeam/geoaudit/internal/config"
	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
	"github.com/gymbeam/geoaudit/internal/processor"
	"github.com/gymbeam/geoaudit/internal/report"
	"github.com/gymbeam/geoaudit/internal/storage"
	"github.com/gymbeam/geoaudit/internal/telemetry"
	"github.com/gymbeam/geoaudit/internal/wordpress"
)

const version = "1.0.0"

type options struct {
	configPath string
	baseURL    string
	perPage    int
	inputPath  string
	cachePath  string
	outDir     string
	dbPath     string
	persist    bool
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "auditor",
		Short: "Audit blog articles against the GEO checklist",
		Long: `Fetches published posts from a WordPress site (or loads a cached
JSON dump), scores each article against the GEO checklist and writes
CSV and HTML reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file path (default config.yml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "WordPress site base URL")
	flags.IntVar(&opts.perPage, "per-page", 0, "number of posts to fetch")
	flags.StringVar(&opts.inputPath, "input", "", "load posts from a JSON file instead of fetching")
	flags.StringVar(&opts.cachePath, "cache", "", "save fetched posts to a JSON file")
	flags.StringVar(&opts.outDir, "out-dir", ".", "directory for CSV and HTML reports")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path for persisted reports")
	flags.BoolVar(&opts.persist, "persist", false, "persist reports to the database")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("auditor version %s\n", version)
		},
	})

	return root
}

func run(ctx context.Context, opts *options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.GetConfigPath(firstNonEmpty(opts.configPath, "config.yml")))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, opts)

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider := telemetry.NewProvider()

	posts, err := loadPosts(ctx, cfg, opts, provider, logger)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		logger.Warn("no posts to audit")
		return nil
	}

	articles := make([]*domain.Article, 0, len(posts))
	for _, post := range posts {
		a, err := article.FromHTML(post.ID, post.Link, post.Title.Rendered, post.Content.Rendered, post.Yoast.Description)
		if err != nil {
			logger.Warn("skipping unparseable post",
				logging.Int("post_id", post.ID),
				logging.Err(err),
			)
			continue
		}
		articles = append(articles, a)
	}

	runner := audit.NewRunner(logger, cfg.Audit)
	batch := processor.NewBatchAuditor(runner, cfg.Service.Concurrency, logger)
	results := batch.Process(ctx, articles)

	reports := make([]*domain.Report, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			logger.Warn("article not audited",
				logging.Int("article_id", result.Article.ID),
				logging.Err(result.Err),
			)
			continue
		}
		reports = append(reports, result.Report)
	}

	if opts.persist {
		if err := persistReports(ctx, cfg.Storage.Path, reports, logger); err != nil {
			return err
		}
	}

	exporter := report.NewExporter(runner.Criteria())
	if err := writeReports(exporter, reports, opts.outDir, logger); err != nil {
		return err
	}

	logger.Info("audit run complete",
		logging.Int("articles", len(articles)),
		logging.Int("reports", len(reports)),
	)
	return nil
}

func applyFlags(cfg *config.Config, opts *options) {
	if opts.baseURL != "" {
		cfg.WordPress.BaseURL = opts.baseURL
	}
	if opts.perPage > 0 {
		cfg.WordPress.PerPage = opts.perPage
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
	}
	if opts.debug {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
}

func loadPosts(ctx context.Context, cfg *config.Config, opts *options, provider *telemetry.Provider, logger logging.Logger) ([]wordpress.Post, error) {
	if opts.inputPath != "" {
		posts, err := wordpress.LoadPosts(opts.inputPath)
		if err != nil {
			return nil, fmt.Errorf("load posts from %s: %w", opts.inputPath, err)
		}
		logger.Info("posts loaded from file",
			logging.String("path", opts.inputPath),
			logging.Int("count", len(posts)),
		)
		return posts, nil
	}

	client := wordpress.NewClient(wordpress.Config{
		BaseURL:        cfg.WordPress.BaseURL,
		Timeout:        cfg.WordPress.Timeout,
		RequestsPerSec: cfg.WordPress.RequestsPerSec,
	}, provider, logger)

	posts, err := client.FetchPosts(ctx, cfg.WordPress.PerPage)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	if opts.cachePath != "" {
		if err := wordpress.SavePosts(posts, opts.cachePath); err != nil {
			return nil, fmt.Errorf("cache posts to %s: %w", opts.cachePath, err)
		}
	}
	return posts, nil
}

func persistReports(ctx context.Context, dbPath string, reports []*domain.Report, logger logging.Logger) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open report storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := storage.NewReportRepository(db)
	for _, r := range reports {
		if err := repo.Save(ctx, r); err != nil {
			return fmt.Errorf("persist report %s: %w", r.ID, err)
		}
	}
	logger.Info("reports persisted",
		logging.String("path", dbPath),
		logging.Int("count", len(reports)),
	)
	return nil
}

func writeReports(exporter *report.Exporter, reports []*domain.Report, outDir string, logger logging.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	csvPath := filepath.Join(outDir, "geo_audit.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", csvPath, err)
	}
	defer func() { _ = csvFile.Close() }()
	if err := exporter.WriteCSV(csvFile, reports); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	htmlPath := filepath.Join(outDir, "geo_audit.html")
	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer func() { _ = htmlFile.Close() }()
	if err := exporter.WriteHTML(htmlFile, reports, "GEO audit"); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	logger.Info("reports written",
		logging.String("csv", csvPath),
		logging.String("html", htmlPath),
	)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
