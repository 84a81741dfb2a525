package catalog

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter returns the entries whose label fuzzy-matches query, keeping
// listing order. A blank query returns every entry. When nothing matches
// fuzzily a plain substring match is tried.
func Filter(entries []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return slices.Clone(entries)
	}

	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.Label()
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Entry, 0, len(matches))
		for i, entry := range entries {
			if _, ok := matches[i]; ok {
				filtered = append(filtered, entry)
			}
		}
		return filtered
	}

	lower := strings.ToLower(trimmed)
	var filtered []Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Filename()), lower) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
