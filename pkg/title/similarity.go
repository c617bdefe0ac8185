package title

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9 ]+`)

// Similarity returns normalized Levenshtein similarity between two strings:
// (maxLen - editDistance) / maxLen, in [0, 1]. Two empty strings are
// considered identical.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	dist := edlib.LevenshteinDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

// ClusterKey derives the key used to cluster titles into sagas: the cleaned
// lowercase filename with accents and non-alphanumerics stripped, truncated
// to its first 3 words.
func ClusterKey(filename string) string {
	s := StripDiacritics(strings.ToLower(Clean(filename)))
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
