// Package article normalizes rendered CMS content into the audit's
// article model. Only what the content API actually returns is
// represented: regions rendered solely by the page template (trailing
// bibliography blocks and similar) never reach this code.
package article

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gymbeam/geoaudit/internal/domain"
)

// strippedSelectors are removed before any text or structure extraction:
// the table-of-contents widget and non-content tags.
var strippedSelectors = []string{"#ez-toc-container", "script", "style", "noscript"}

// FromHTML normalizes one rendered post body into an Article.
func FromHTML(id int, pageURL, title, bodyHTML, metaDescription string) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return nil, fmt.Errorf("parse article body: %w", err)
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	body := collapse(textContent(doc))

	a := &domain.Article{
		ID:              id,
		URL:             pageURL,
		Title:           collapse(title),
		Body:            body,
		FirstParagraph:  firstParagraph(doc),
		MetaDescription: strings.TrimSpace(metaDescription),
		Headings:        headings(doc),
		Links:           links(doc),
		WordCount:       len(strings.Fields(body)),
		ListCount:       doc.Find("ul").Length() + doc.Find("ol").Length(),
		TableCount:      doc.Find("table").Length(),
	}
	return a, nil
}

// headings collects h1-h6 in document order.
func headings(doc *goquery.Document) []domain.Heading {
	var out []domain.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if len(name) != 2 {
			return
		}
		out = append(out, domain.Heading{
			Level: int(name[1] - '0'),
			Text:  collapse(sel.Text()),
		})
	})
	return out
}

// links collects every in-body hyperlink. Relative links keep an empty
// TargetHost; the citation criterion ignores them.
func links(doc *goquery.Document) []domain.Link {
	var out []domain.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		host := ""
		if u, err := url.Parse(href); err == nil {
			host = u.Hostname()
		}

		out = append(out, domain.Link{
			AnchorText: collapse(sel.Text()),
			TargetHost: host,
			TargetURL:  href,
		})
	})
	return out
}

// firstParagraph returns the normalized text of the first <p> element.
func firstParagraph(doc *goquery.Document) string {
	p := doc.Find("p").First()
	if p.Length() == 0 {
		return ""
	}
	return collapse(p.Text())
}

// textContent renders the document's text with a space between text
// nodes, so adjacent block elements never glue words together.
func textContent(doc *goquery.Document) string {
	var sb strings.Builder
	for _, node := range doc.Nodes {
		collectText(node, &sb)
	}
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

// collapse folds runs of whitespace into single spaces and trims.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
