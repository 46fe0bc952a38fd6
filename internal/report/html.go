package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// Badge tier thresholds as a share of the maximum score.
const (
	badgeGoodShare = 0.8
	badgeMidShare  = 0.5
)

// htmlPage is the view model handed to the HTML template.
type htmlPage struct {
	Title         string
	GeneratedAt   string
	TotalArticles int
	AvgScore      float64
	MaxScore      int
	Columns       []string
	Cards         []htmlCard
}

type htmlCard struct {
	URL             string
	Title           string
	Score           int
	MaxScore        int
	BadgeClass      string
	Pills           []htmlPill
	Recommendations []string
}

type htmlPill struct {
	Label  string
	Passed bool
}

// WriteHTML renders the full audit report page: a summary header, one
// card per article and a compact overview table.
func (e *Exporter) WriteHTML(w io.Writer, reports []*domain.Report, title string) error {
	page := htmlPage{
		Title:         title,
		GeneratedAt:   time.Now().Format("2006-01-02 15:04"),
		TotalArticles: len(reports),
		MaxScore:      len(e.criteria),
	}
	for _, c := range e.criteria {
		page.Columns = append(page.Columns, c.Label)
	}

	total := 0
	for _, r := range reports {
		total += r.Score
		page.Cards = append(page.Cards, e.card(r))
	}
	if len(reports) > 0 {
		page.AvgScore = float64(total) / float64(len(reports))
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func (e *Exporter) card(r *domain.Report) htmlCard {
	card := htmlCard{
		URL:             r.ArticleURL,
		Title:           r.ArticleTitle,
		Score:           r.Score,
		MaxScore:        r.MaxScore,
		BadgeClass:      badgeClass(r.Score, r.MaxScore),
		Recommendations: r.Recommendations(),
	}
	for _, c := range e.criteria {
		v, ok := r.Verdict(c.ID)
		card.Pills = append(card.Pills, htmlPill{
			Label:  c.Label,
			Passed: ok && v.Passed(),
		})
	}
	return card
}

// badgeClass buckets a score into good/mid/bad.
func badgeClass(score, maxScore int) string {
	if maxScore == 0 {
		return "badge badge--bad"
	}
	share := float64(score) / float64(maxScore)
	switch {
	case share >= badgeGoodShare:
		return "badge badge--good"
	case share >= badgeMidShare:
		return "badge badge--mid"
	default:
		return "badge badge--bad"
	}
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="sk">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 72rem; color: #1f2430; }
.summary { display: flex; gap: 2rem; margin-bottom: 2rem; color: #5a6172; }
.card { border: 1px solid #e2e5ec; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1rem; }
.card__top { display: flex; justify-content: space-between; align-items: baseline; }
.card__title a { color: inherit; text-decoration: none; font-weight: 600; }
.card__url { color: #8a92a5; font-size: 0.8rem; word-break: break-all; }
.badge { border-radius: 999px; padding: 0.2rem 0.7rem; font-weight: 600; }
.badge--good { background: #e3f6e8; color: #1d7a36; }
.badge--mid { background: #fdf3dc; color: #9a6b00; }
.badge--bad { background: #fde4e4; color: #b3261e; }
.pills { display: flex; flex-wrap: wrap; gap: 0.4rem; margin: 0.75rem 0; }
.pill { border: 1px solid #e2e5ec; border-radius: 999px; padding: 0.15rem 0.6rem; font-size: 0.8rem; display: inline-flex; align-items: center; gap: 0.35rem; }
.dot { width: 0.5rem; height: 0.5rem; border-radius: 50%; display: inline-block; }
.dot--ok { background: #2aa84f; }
.dot--no { background: #d4d8e0; }
.recs { margin: 0.25rem 0 0 1rem; padding: 0; color: #5a6172; font-size: 0.9rem; }
.muted { color: #8a92a5; font-size: 0.9rem; }
table { border-collapse: collapse; width: 100%; margin-top: 2rem; font-size: 0.85rem; }
th, td { border: 1px solid #e2e5ec; padding: 0.35rem 0.5rem; text-align: left; }
.td-center { text-align: center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="summary">
<span>Články: {{.TotalArticles}}</span>
<span>Priemerné skóre: {{printf "%.2f" .AvgScore}}/{{.MaxScore}}</span>
<span>Vygenerované: {{.GeneratedAt}}</span>
</div>

{{range .Cards}}
<article class="card">
  <div class="card__top">
    <div>
      <div class="card__title"><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a></div>
      <div class="card__url">{{.URL}}</div>
    </div>
    <div><span class="{{.BadgeClass}}">{{.Score}}/{{.MaxScore}}</span></div>
  </div>
  <div class="pills">
    {{range .Pills}}<div class="pill"><span class="dot {{if .Passed}}dot--ok{{else}}dot--no{{end}}"></span><span>{{.Label}}</span></div>{{end}}
  </div>
  <div>
    {{if .Recommendations}}<ul class="recs">{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>{{else}}<div class="muted">Žiadne odporúčania</div>{{end}}
  </div>
</article>
{{else}}
<div class="muted">Žiadne dáta.</div>
{{end}}

{{if .Cards}}
<table>
  <tr><th>URL</th><th>Názov</th><th>Skóre</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range .Cards}}
  <tr>
    <td><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">link</a></td>
    <td>{{.Title}}</td>
    <td><span class="{{.BadgeClass}}">{{.Score}}/{{.MaxScore}}</span></td>
    {{range .Pills}}<td class="td-center">{{if .Passed}}&#10003;{{else}}&ndash;{{end}}</td>{{end}}
  </tr>
  {{end}}
</table>
{{end}}
</body>
</html>
`))
