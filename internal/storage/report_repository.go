package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// ErrReportNotFound is returned when no report matches the given ID.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository handles database operations for audit reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Ping verifies the database connection is alive.
func (r *ReportRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

type reportRow struct {
	ID           string    `db:"id"`
	ArticleID    int       `db:"article_id"`
	ArticleURL   string    `db:"article_url"`
	ArticleTitle string    `db:"article_title"`
	Score        int       `db:"score"`
	MaxScore     int       `db:"max_score"`
	GeneratedAt  time.Time `db:"generated_at"`
}

type verdictRow struct {
	ReportID       string `db:"report_id"`
	Position       int    `db:"position"`
	CriterionID    string `db:"criterion_id"`
	Status         string `db:"status"`
	Rationale      string `db:"rationale"`
	Recommendation string `db:"recommendation"`
}

// Save persists a report and its verdicts atomically.
func (r *ReportRepository) Save(ctx context.Context, report *domain.Report) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertReport = `
		INSERT INTO reports (id, article_id, article_url, article_title, score, max_score, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insertReport,
		report.ID,
		report.ArticleID,
		report.ArticleURL,
		report.ArticleTitle,
		report.Score,
		report.MaxScore,
		report.GeneratedAt,
	); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	const insertVerdict = `
		INSERT INTO verdicts (report_id, position, criterion_id, status, rationale, recommendation)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, v := range report.Verdicts {
		if _, err := tx.ExecContext(ctx, insertVerdict,
			report.ID,
			i,
			string(v.CriterionID),
			string(v.Status),
			v.Rationale,
			v.Recommendation,
		); err != nil {
			return fmt.Errorf("insert verdict %s: %w", v.CriterionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}
	return nil
}

// Get retrieves a report with its verdicts by report ID.
func (r *ReportRepository) Get(ctx context.Context, id string) (*domain.Report, error) {
	var row reportRow
	const query = `
		SELECT id, article_id, article_url, article_title, score, max_score, generated_at
		FROM reports
		WHERE id = ?
	`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	report := toDomain(row)
	verdicts, err := r.loadVerdicts(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Verdicts = verdicts
	return report, nil
}

// ListByArticle retrieves all reports for one article, newest first.
func (r *ReportRepository) ListByArticle(ctx context.Context, articleID int) ([]*domain.Report, error) {
	const query = `
		SELECT id, article_id, article_url, article_title, score, max_score, generated_at
		FROM reports
		WHERE article_id = ?
		ORDER BY generated_at DESC
	`
	return r.list(ctx, query, articleID)
}

// ListRecent retrieves the most recent reports across all articles.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Report, error) {
	const query = `
		SELECT id, article_id, article_url, article_title, score, max_score, generated_at
		FROM reports
		ORDER BY generated_at DESC
		LIMIT ?
	`
	return r.list(ctx, query, limit)
}

func (r *ReportRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Report, error) {
	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]*domain.Report, 0, len(rows))
	for _, row := range rows {
		report := toDomain(row)
		verdicts, err := r.loadVerdicts(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		report.Verdicts = verdicts
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *ReportRepository) loadVerdicts(ctx context.Context, reportID string) ([]domain.Verdict, error) {
	var rows []verdictRow
	const query = `
		SELECT report_id, position, criterion_id, status, rationale, recommendation
		FROM verdicts
		WHERE report_id = ?
		ORDER BY position
	`
	if err := r.db.SelectContext(ctx, &rows, query, reportID); err != nil {
		return nil, fmt.Errorf("load verdicts: %w", err)
	}

	verdicts := make([]domain.Verdict, 0, len(rows))
	for _, row := range rows {
		verdicts = append(verdicts, domain.Verdict{
			CriterionID:    domain.CriterionID(row.CriterionID),
			Status:         domain.VerdictStatus(row.Status),
			Rationale:      row.Rationale,
			Recommendation: row.Recommendation,
		})
	}
	return verdicts, nil
}

func toDomain(row reportRow) *domain.Report {
	return &domain.Report{
		ID:           row.ID,
		ArticleID:    row.ArticleID,
		ArticleURL:   row.ArticleURL,
		ArticleTitle: row.ArticleTitle,
		Score:        row.Score,
		MaxScore:     row.MaxScore,
		GeneratedAt:  row.GeneratedAt,
	}
}
