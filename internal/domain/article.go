package domain

// Heading is one heading of the article body, in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is one hyperlink found inside the rendered article body.
// Links are never inferred or fetched from anywhere else; if the content
// API does not render a region (e.g. a trailing bibliography block), its
// links do not exist as far as the audit is concerned.
type Link struct {
	AnchorText string `json:"anchor_text"`
	TargetHost string `json:"target_host"`
	TargetURL  string `json:"target_url"`
}

// Article is the normalized representation of one fetched post.
// It is read-only during an audit pass; criteria must not mutate it.
type Article struct {
	ID  int    `json:"id"`
	URL string `json:"url"`

	Title           string `json:"title"`
	Body            string `json:"body"`
	FirstParagraph  string `json:"first_paragraph"`
	MetaDescription string `json:"meta_description,omitempty"`

	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`

	// Structure counters taken from the rendered body, after chrome
	// (table of contents, scripts, styles) has been stripped.
	WordCount  int `json:"word_count"`
	ListCount  int `json:"list_count"`
	TableCount int `json:"table_count"`
}

// H2Count returns the number of level-2 headings in the body.
func (a *Article) H2Count() int {
	count := 0
	for _, h := range a.Headings {
		if h.Level == 2 {
			count++
		}
	}
	return count
}

// TermConfidence describes how reliable a derived MainTerm is.
type TermConfidence string

const (
	// TermExplicit means the term was read directly off a title shape.
	TermExplicit TermConfidence = "explicit"
	// TermHeuristic is reserved for future fuzzier extraction strategies.
	TermHeuristic TermConfidence = "heuristic"
	// TermUnknown means no reliable term could be derived. Callers must
	// not assume a term exists.
	TermUnknown TermConfidence = "unknown"
)

// MainTerm is the central subject of an article, derived from its title.
// Derived once per article and immutable afterward.
type MainTerm struct {
	Term       string         `json:"term,omitempty"`
	Confidence TermConfidence `json:"confidence"`
}
