package catalog

import (
	"net/url"
	"strings"

	"github.com/vmunix/mediatheque/pkg/title"
)

// searchLimit caps search results after sorting.
const searchLimit = 20

// FilterByQuery returns the flattened items matching a free-text query,
// sorted for display and capped at searchLimit. Matching is substring-based,
// case-insensitive and accent-insensitive, against the primary and localized
// titles. Groups are flattened to their children before matching.
func FilterByQuery(items []Item, query string) []MediaItem {
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	qFold := title.StripDiacritics(q)

	var matches []MediaItem
	for _, it := range items {
		if it.IsGroup {
			for _, ep := range it.Episodes {
				if matchesQuery(ep, q, qFold) {
					matches = append(matches, ep)
				}
			}
			continue
		}
		if matchesQuery(it.MediaItem, q, qFold) {
			matches = append(matches, it.MediaItem)
		}
	}

	sortMediaItems(matches)
	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}
	return matches
}

func matchesQuery(m MediaItem, q, qFold string) bool {
	return fieldMatches(m.Title, q, qFold) || fieldMatches(m.LocalizedTitle, q, qFold)
}

func fieldMatches(field, q, qFold string) bool {
	if field == "" {
		return false
	}
	f := strings.ToLower(field)
	if strings.Contains(f, q) {
		return true
	}
	return strings.Contains(title.StripDiacritics(f), qFold)
}
