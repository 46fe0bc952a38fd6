package audit

import (
	"context"
	"testing"

	"github.com/gymbeam/geoaudit/internal/domain"
)

func sourcesSubject(a *domain.Article) *Subject {
	return newSubject(a, NewTermExtractor(nil))
}

func TestSourcesLinkCheck(t *testing.T) {
	criterion := NewSourcesCriterion(NewAllowlist([]string{
		"pubmed.ncbi.nlm.nih.gov",
		"examine.com",
	}))

	tests := []struct {
		name  string
		links []domain.Link
		body  string
		want  domain.VerdictStatus
	}{
		{
			name: "link to allow-listed host",
			links: []domain.Link{
				{TargetHost: "pubmed.ncbi.nlm.nih.gov", TargetURL: "https://pubmed.ncbi.nlm.nih.gov/12345/"},
			},
			body: "Kreatín je bezpečný doplnok.",
			want: domain.StatusPass,
		},
		{
			name: "subdomain of allow-listed host",
			links: []domain.Link{
				{TargetHost: "www.examine.com", TargetURL: "https://www.examine.com/supplements/creatine/"},
			},
			body: "Text bez sekcie.",
			want: domain.StatusPass,
		},
		{
			name: "only unlisted links and no section",
			links: []domain.Link{
				{TargetHost: "example.org", TargetURL: "https://example.org/blog"},
			},
			body: "Text bez sekcie.",
			want: domain.StatusFail,
		},
		{
			name: "attacker host does not slip through",
			links: []domain.Link{
				{TargetHost: "examine.com.attacker.com", TargetURL: "https://examine.com.attacker.com/"},
			},
			body: "Text bez sekcie.",
			want: domain.StatusFail,
		},
		{
			name: "unlisted link but source section in body",
			links: []domain.Link{
				{TargetHost: "example.org", TargetURL: "https://example.org/"},
			},
			body: "Na záver uvádzame zdroje, z ktorých článok čerpá.",
			want: domain.StatusPass,
		},
		{
			name: "no links at all with studies mention",
			body: "Viaceré štúdie potvrdzujú účinok.",
			want: domain.StatusPass,
		},
		{
			// "zdrojec" must not match, the trailing "zdroje." does.
			name: "word boundary respected",
			body: "Zdrojec nie je slovo zdroje.",
			want: domain.StatusPass,
		},
		{
			name: "no links and no section words",
			body: "Článok bez referencií.",
			want: domain.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.Article{Title: "Test", Body: tt.body, Links: tt.links}
			verdict, err := criterion.Evaluate(context.Background(), sourcesSubject(a))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if verdict.Status != tt.want {
				t.Errorf("Evaluate() status = %v, want %v (rationale: %s)", verdict.Status, tt.want, verdict.Rationale)
			}
		})
	}
}

func TestSourcesEmptyAllowlistFailsClosed(t *testing.T) {
	criterion := NewSourcesCriterion(NewAllowlist(nil))

	a := &domain.Article{
		Title: "Test",
		Body:  "Článok bez sekcie so zoznamom literatúry.",
		Links: []domain.Link{
			{TargetHost: "pubmed.ncbi.nlm.nih.gov", TargetURL: "https://pubmed.ncbi.nlm.nih.gov/1/"},
		},
	}

	verdict, err := criterion.Evaluate(context.Background(), sourcesSubject(a))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Status != domain.StatusFail {
		t.Errorf("empty allowlist must fail closed, got %v", verdict.Status)
	}
	if verdict.Status == domain.StatusFail && verdict.Recommendation == "" {
		t.Error("failing verdict should carry a recommendation")
	}
}

func TestSourcesSectionWordBoundary(t *testing.T) {
	criterion := NewSourcesCriterion(NewAllowlist(nil))

	// "zdrojom" contains "zdroj" but not the word "zdroje".
	a := &domain.Article{Title: "Test", Body: "Bielkoviny sú zdrojom aminokyselín."}
	verdict, err := criterion.Evaluate(context.Background(), sourcesSubject(a))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Status != domain.StatusFail {
		t.Errorf("partial word must not match a section word, got %v (%s)", verdict.Status, verdict.Rationale)
	}

	a = &domain.Article{Title: "Test", Body: "Odporúčané štúdie: pozri nižšie."}
	verdict, err = criterion.Evaluate(context.Background(), sourcesSubject(a))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if verdict.Status != domain.StatusPass {
		t.Errorf("accented section word should match on boundary, got %v (%s)", verdict.Status, verdict.Rationale)
	}
}
