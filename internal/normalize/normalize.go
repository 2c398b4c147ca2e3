// Package normalize provides the text folding used by the search filters.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s in a form suitable for case-insensitive comparison.
// Unicode is composed first so "é" typed two ways still matches.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Matcher folds a search term once and tests it against many fields.
type Matcher struct {
	term string
}

// NewMatcher prepares a case-insensitive substring matcher for term. The term
// is used as given, so a whitespace-only term only matches fields containing it.
func NewMatcher(term string) Matcher {
	return Matcher{term: Fold(term)}
}

// Any reports whether any of fields contains the term. An empty term
// matches everything.
func (m Matcher) Any(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}
