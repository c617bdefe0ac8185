package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// leadingArticles are stripped before comparison, English and French.
var leadingArticles = []string{"the ", "le ", "la ", "les ", "un ", "une ", "des "}

// SortKey reduces a title to its comparison form: lowercase, leading
// bracketed tag and leading article stripped, punctuation dropped.
func SortKey(t string) string {
	s := strings.ToLower(strings.TrimSpace(t))
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end >= 0 {
			s = strings.TrimSpace(s[end+1:])
		}
	}
	for _, article := range leadingArticles {
		if strings.HasPrefix(s, article) {
			s = strings.TrimPrefix(s, article)
			break
		}
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// sortItems orders a top-level list by French collation at base sensitivity,
// so neither case nor accents affect ordering. Collators are not safe for
// concurrent use; each call gets its own.
func sortItems(items []Item) {
	c := collate.New(language.French, collate.Loose)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(SortKey(items[i].Title), SortKey(items[j].Title)) < 0
	})
}

// sortMediaItems is sortItems for flattened search results.
func sortMediaItems(items []MediaItem) {
	c := collate.New(language.French, collate.Loose)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(SortKey(items[i].Title), SortKey(items[j].Title)) < 0
	})
}
