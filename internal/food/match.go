package food

import "strings"

// Normalize normalizes a keyword or identifier for matching:
// trimmed and lowercased. Identifiers keep their original form for
// storage and display; normalization applies only to comparisons.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether a food's keyword set matches the query.
// An empty query matches every food. Matching is case-insensitive
// set membership: with matchAll, every query keyword must appear in
// the food's keywords; otherwise at least one must.
func Matches(f Food, query []string, matchAll bool) bool {
	if len(query) == 0 {
		return true
	}

	have := make(map[string]bool)
	for _, kw := range f.Keywords() {
		have[Normalize(kw)] = true
	}

	if matchAll {
		for _, q := range query {
			if !have[Normalize(q)] {
				return false
			}
		}
		return true
	}

	for _, q := range query {
		if have[Normalize(q)] {
			return true
		}
	}
	return false
}
