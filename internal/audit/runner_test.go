package audit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gymbeam/geoaudit/internal/domain"
	"github.com/gymbeam/geoaudit/internal/logging"
)

func testArticle() *domain.Article {
	return &domain.Article{
		ID:    42,
		URL:   "https://gymbeam.sk/blog/kreatin",
		Title: "Kreatín: Čo je to a ako funguje?",
		Body: "Kreatín je organická zlúčenina, ktorá dodáva svalom energiu. " +
			"Odporúčaná dávka je 5 g denne. Viaceré štúdie potvrdzujú účinok.",
		FirstParagraph:  "Kreatín je organická zlúčenina, ktorá dodáva svalom energiu.",
		MetaDescription: "Kreatín patrí medzi najlepšie preskúmané doplnky výživy. Zistite, ako funguje, ako ho dávkovať a čo hovoria štúdie o jeho bezpečnosti.",
		Headings: []domain.Heading{
			{Level: 2, Text: "Čo je kreatín?"},
			{Level: 2, Text: "Dávkovanie"},
			{Level: 2, Text: "Zdroje"},
		},
		Links: []domain.Link{
			{TargetHost: "pubmed.ncbi.nlm.nih.gov", TargetURL: "https://pubmed.ncbi.nlm.nih.gov/1/"},
		},
		WordCount:  600,
		ListCount:  2,
		TableCount: 1,
	}
}

func TestRunnerDisplayOrder(t *testing.T) {
	runner := NewRunner(logging.Nop(), Config{})

	want := []domain.CriterionID{
		domain.CriterionDirectAnswer,
		domain.CriterionDefinition,
		domain.CriterionHeadings,
		domain.CriterionFacts,
		domain.CriterionSources,
		domain.CriterionFAQ,
		domain.CriterionLists,
		domain.CriterionTables,
		domain.CriterionWordCount,
		domain.CriterionMetaDescription,
	}

	metas := runner.Criteria()
	if len(metas) != len(want) {
		t.Fatalf("Criteria() returned %d entries, want %d", len(metas), len(want))
	}
	for i, meta := range metas {
		if meta.ID != want[i] {
			t.Errorf("criterion %d = %s, want %s", i, meta.ID, want[i])
		}
	}

	report := runner.Audit(context.Background(), testArticle())
	got := make([]domain.CriterionID, 0, len(report.Verdicts))
	for _, v := range report.Verdicts {
		got = append(got, v.CriterionID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("verdict order = %v, want %v", got, want)
	}
}

func TestRunnerScore(t *testing.T) {
	runner := NewRunner(logging.Nop(), Config{})
	report := runner.Audit(context.Background(), testArticle())

	if report.MaxScore != 10 {
		t.Errorf("MaxScore = %d, want 10", report.MaxScore)
	}

	passed := 0
	for _, v := range report.Verdicts {
		if v.Passed() {
			passed++
		}
	}
	if report.Score != passed {
		t.Errorf("Score = %d, but %d verdicts passed", report.Score, passed)
	}
	if report.ID == "" {
		t.Error("report must carry an ID")
	}
	if report.ArticleID != 42 {
		t.Errorf("ArticleID = %d, want 42", report.ArticleID)
	}
}

func TestRunnerDeterminism(t *testing.T) {
	runner := NewRunner(logging.Nop(), Config{})
	a := testArticle()

	first := runner.Audit(context.Background(), a)
	for i := 0; i < 5; i++ {
		got := runner.Audit(context.Background(), a)
		if got.Score != first.Score {
			t.Fatalf("score changed across runs: %d vs %d", got.Score, first.Score)
		}
		if !reflect.DeepEqual(got.Verdicts, first.Verdicts) {
			t.Fatalf("verdicts changed across runs:\n%v\nvs\n%v", got.Verdicts, first.Verdicts)
		}
	}
}

type panickyCriterion struct{}

func (panickyCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{ID: "panicky", Label: "Panicky"}
}

func (panickyCriterion) Evaluate(context.Context, *Subject) (domain.Verdict, error) {
	panic("boom")
}

type failingCriterion struct{}

func (failingCriterion) Meta() domain.CriterionMeta {
	return domain.CriterionMeta{ID: "failing", Label: "Failing"}
}

func (failingCriterion) Evaluate(context.Context, *Subject) (domain.Verdict, error) {
	return domain.Verdict{}, errors.New("internal fault")
}

func TestRunnerIsolatesFaultyCriteria(t *testing.T) {
	runner := &Runner{
		criteria: []Criterion{
			panickyCriterion{},
			failingCriterion{},
			NewTablesCriterion(),
		},
		extractor: NewTermExtractor(nil),
		allowlist: NewAllowlist(nil),
		logger:    logging.Nop(),
	}

	a := testArticle()
	report := runner.Audit(context.Background(), a)

	if len(report.Verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(report.Verdicts))
	}
	if report.Verdicts[0].Status != domain.StatusError {
		t.Errorf("panicking criterion status = %v, want error", report.Verdicts[0].Status)
	}
	if report.Verdicts[1].Status != domain.StatusError {
		t.Errorf("erroring criterion status = %v, want error", report.Verdicts[1].Status)
	}
	if report.Verdicts[2].Status != domain.StatusPass {
		t.Errorf("healthy criterion should still run, got %v", report.Verdicts[2].Status)
	}
	if report.Score != 1 {
		t.Errorf("error verdicts must not score, Score = %d, want 1", report.Score)
	}
	if report.MaxScore != 3 {
		t.Errorf("MaxScore = %d, want 3", report.MaxScore)
	}
}

func TestConfigSetDefaults(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	if cfg.MinHeadings == 0 || cfg.MinWords == 0 || cfg.MetaMinLength == 0 {
		t.Error("SetDefaults left thresholds unset")
	}
	if len(cfg.AllowedSourceHosts) == 0 {
		t.Error("nil allowlist should receive default hosts")
	}

	// An explicitly empty allowlist is preserved: that is how operators
	// force the citation criterion to fail closed.
	cfg = Config{AllowedSourceHosts: []string{}}
	cfg.SetDefaults()
	if len(cfg.AllowedSourceHosts) != 0 {
		t.Errorf("explicit empty allowlist was overwritten: %v", cfg.AllowedSourceHosts)
	}
}
