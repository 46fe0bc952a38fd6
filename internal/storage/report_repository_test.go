package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymbeam/geoaudit/internal/domain"
)

func newMockRepo(t *testing.T) (*ReportRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReportRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:           "r-1",
		ArticleID:    42,
		ArticleURL:   "https://gymbeam.sk/blog/kreatin",
		ArticleTitle: "Kreatín: Čo je to?",
		Verdicts: []domain.Verdict{
			{CriterionID: domain.CriterionDefinition, Status: domain.StatusPass, Rationale: "ok"},
			{CriterionID: domain.CriterionSources, Status: domain.StatusFail, Rationale: "none", Recommendation: `Pridať sekciu "Zdroje".`},
		},
		Score:       1,
		MaxScore:    2,
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveReport(t *testing.T) {
	repo, mock := newMockRepo(t)
	report := sampleReport()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reports").
		WithArgs(report.ID, report.ArticleID, report.ArticleURL, report.ArticleTitle,
			report.Score, report.MaxScore, report.GeneratedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO verdicts").
		WithArgs(report.ID, 0, "definition", "pass", "ok", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO verdicts").
		WithArgs(report.ID, 1, "sources", "fail", "none", `Pridať sekciu "Zdroje".`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveReportRollsBackOnVerdictError(t *testing.T) {
	repo, mock := newMockRepo(t)
	report := sampleReport()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reports").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO verdicts").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert verdict")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReport(t *testing.T) {
	repo, mock := newMockRepo(t)
	generated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, article_id, article_url, article_title, score, max_score, generated_at").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "article_id", "article_url", "article_title", "score", "max_score", "generated_at",
		}).AddRow("r-1", 42, "https://gymbeam.sk/blog/kreatin", "Kreatín: Čo je to?", 1, 2, generated))
	mock.ExpectQuery("SELECT report_id, position, criterion_id, status, rationale, recommendation").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "position", "criterion_id", "status", "rationale", "recommendation",
		}).
			AddRow("r-1", 0, "definition", "pass", "ok", "").
			AddRow("r-1", 1, "sources", "fail", "none", `Pridať sekciu "Zdroje".`))

	report, err := repo.Get(context.Background(), "r-1")
	require.NoError(t, err)

	assert.Equal(t, "r-1", report.ID)
	assert.Equal(t, 42, report.ArticleID)
	assert.Equal(t, 1, report.Score)
	require.Len(t, report.Verdicts, 2)
	assert.Equal(t, domain.CriterionDefinition, report.Verdicts[0].CriterionID)
	assert.Equal(t, domain.StatusPass, report.Verdicts[0].Status)
	assert.Equal(t, domain.StatusFail, report.Verdicts[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, article_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "article_id", "article_url", "article_title", "score", "max_score", "generated_at",
		}))

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestListByArticle(t *testing.T) {
	repo, mock := newMockRepo(t)
	generated := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, article_id, article_url, article_title, score, max_score, generated_at").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "article_id", "article_url", "article_title", "score", "max_score", "generated_at",
		}).
			AddRow("r-2", 42, "https://gymbeam.sk/blog/kreatin", "Kreatín", 2, 2, generated.Add(time.Hour)).
			AddRow("r-1", 42, "https://gymbeam.sk/blog/kreatin", "Kreatín", 1, 2, generated))
	mock.ExpectQuery("SELECT report_id, position").
		WithArgs("r-2").
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "position", "criterion_id", "status", "rationale", "recommendation",
		}))
	mock.ExpectQuery("SELECT report_id, position").
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "position", "criterion_id", "status", "rationale", "recommendation",
		}))

	reports, err := repo.ListByArticle(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r-2", reports[0].ID)
	assert.Equal(t, "r-1", reports[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
