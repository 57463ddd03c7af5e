// Package assistant implements the MoneyMap conversational assistant: text
// matching, free-text transaction capture, the add-transaction wizard, the
// reply router and the conversation session that ties them together.
package assistant

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Normalize lower-cases and trims the input. Empty input stays empty.
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EditDistance returns the Levenshtein distance between the normalized forms
// of a and b.
func EditDistance(a, b string) int {
	return fuzzy.LevenshteinDistance(Normalize(a), Normalize(b))
}

// TokenScore scores how well keyword matches text.
// A substring hit scores 5. Otherwise each whitespace token of text is
// compared to the keyword by edit distance: distance 1 scores 2, distance 2
// scores 1, and the best token score wins. Larger typos score 0.
//
// This is deliberate typo tolerance, not general fuzzy search: single and
// double character typos are recoverable, anything beyond that is not.
func TokenScore(text, keyword string) float64 {
	if keyword == "" {
		return 0
	}
	if strings.Contains(text, keyword) {
		return 5
	}

	var best float64
	for _, word := range strings.Fields(text) {
		switch fuzzy.LevenshteinDistance(word, keyword) {
		case 1:
			if best < 2 {
				best = 2
			}
		case 2:
			if best < 1 {
				best = 1
			}
		}
	}
	return best
}
