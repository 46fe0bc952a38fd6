package audit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSpace collapses runs of whitespace into single spaces and trims
// the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeText lowercases and collapses whitespace. All phrase matching in
// this package runs over text in this form.
func normalizeText(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}

// diacriticsRemover decomposes, strips combining marks, then recomposes.
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips accent marks: "Kreatín" becomes "Kreatin".
// Used for accent-insensitive matching when configured; both sides of a
// comparison must be folded.
func FoldDiacritics(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		return s
	}
	return out
}
