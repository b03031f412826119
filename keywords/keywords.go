// Package keywords builds the coarse searchable token index for posts.
// It is not a search engine: tokens are matched exactly, never ranked.
package keywords

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Extract lowercases text, strips punctuation, splits on whitespace and
// returns the deduplicated tokens longer than two characters, in
// first-seen order. Empty input yields an empty set.
func Extract(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")

	seen := make(map[string]struct{})
	tokens := []string{}
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}
