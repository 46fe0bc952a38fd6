package audit

import (
	"regexp"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// PhraseSet matches a fixed set of literal phrases anywhere in a text.
// The Aho-Corasick automaton is built once at construction; matching is a
// single pass through the input regardless of how many phrases are
// registered.
type PhraseSet struct {
	phrases []string
	matcher *ahocorasick.Matcher
}

// NewPhraseSet builds a matcher for the given phrases. Phrases are
// lowercased and trimmed; empty entries are dropped.
func NewPhraseSet(phrases ...string) *PhraseSet {
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}

	set := &PhraseSet{phrases: normalized}
	if len(normalized) > 0 {
		set.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return set
}

// FindAll returns the registered phrases present in text, in registration
// order. Matching is case-insensitive.
func (p *PhraseSet) FindAll(text string) []string {
	if p.matcher == nil || text == "" {
		return nil
	}

	hits := p.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}

	sort.Ints(hits)
	found := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(p.phrases) {
			continue
		}
		found = append(found, p.phrases[idx])
	}
	return found
}

// Matches reports whether any registered phrase occurs in text.
func (p *PhraseSet) Matches(text string) bool {
	if p.matcher == nil || text == "" {
		return false
	}
	return len(p.matcher.Match([]byte(strings.ToLower(text)))) > 0
}

// Phrases returns the registered phrases.
func (p *PhraseSet) Phrases() []string {
	out := make([]string, len(p.phrases))
	copy(out, p.phrases)
	return out
}

// WordSet matches any of a fixed set of words or phrases on letter/digit
// boundaries. Go's \b is ASCII-only and never fires next to accented
// letters ("štúdie"), so the boundaries are spelled out with \p{L}\p{N}
// classes instead.
type WordSet struct {
	re *regexp.Regexp
}

// NewWordSet builds a boundary-anchored, case-insensitive matcher for the
// given words.
func NewWordSet(words ...string) *WordSet {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	// An empty alternation would match everything; leave the regexp nil
	// instead, matching nothing like an empty PhraseSet.
	if len(quoted) == 0 {
		return &WordSet{}
	}
	pattern := `(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`
	return &WordSet{re: regexp.MustCompile(pattern)}
}

// Matches reports whether any registered word occurs in text on a boundary.
func (w *WordSet) Matches(text string) bool {
	if w.re == nil {
		return false
	}
	return w.re.MatchString(text)
}
