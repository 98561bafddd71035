package search

import (
	"github.com/sahilm/fuzzy"
	"github.com/theysh/startpage/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Shortcut       model.Shortcut
	Index          int // position in the searched collection
	MatchedIndexes []int
	Score          int
}

// shortcutTitles implements fuzzy.Source for a collection.
type shortcutTitles model.Collection

func (st shortcutTitles) String(i int) string {
	return st[i].Title
}

func (st shortcutTitles) Len() int {
	return len(st)
}

// FuzzySearchShortcuts searches shortcuts by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchShortcuts(links model.Collection, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, shortcutTitles(links))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Shortcut:       links[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
