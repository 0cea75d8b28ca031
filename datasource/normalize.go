package datasource

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CanonicalPlace folds a place name for comparison and cache keys: it
// applies compatibility decomposition, drops combining marks, case folds and
// collapses whitespace, so "  SÃO  Paulo" and "sao paulo" compare equal.
func CanonicalPlace(place string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, place)
	if err != nil {
		s = place
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// PlaceSegments splits a canonical place on commas into trimmed parts.
func PlaceSegments(canonical string) []string {
	parts := strings.Split(canonical, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
