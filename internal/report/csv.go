// Package report renders audit reports to CSV and HTML.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// Exporter renders reports with a fixed criterion column order.
type Exporter struct {
	criteria []domain.CriterionMeta
}

// NewExporter creates an exporter. The criteria slice fixes the column
// order of both the CSV and the HTML output.
func NewExporter(criteria []domain.CriterionMeta) *Exporter {
	return &Exporter{criteria: criteria}
}

// WriteCSV writes one row per report: url, title, score, one 0/1 column
// per criterion, and the joined recommendations. Error verdicts count as 0.
func (e *Exporter) WriteCSV(w io.Writer, reports []*domain.Report) error {
	cw := csv.NewWriter(w)

	header := []string{"url", "title", "score"}
	for _, c := range e.criteria {
		header = append(header, string(c.ID))
	}
	header = append(header, "recommendations")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range reports {
		row := []string{r.ArticleURL, r.ArticleTitle, strconv.Itoa(r.Score)}
		for _, c := range e.criteria {
			cell := "0"
			if v, ok := r.Verdict(c.ID); ok && v.Passed() {
				cell = "1"
			}
			row = append(row, cell)
		}
		row = append(row, strings.Join(r.Recommendations(), " | "))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
