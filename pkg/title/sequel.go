package title

import (
	"regexp"
	"strings"
)

// SequelInfo describes a detected sequel marker.
type SequelInfo struct {
	BaseTitle   string
	Number      int
	HasSubtitle bool
	Subtitle    string
}

// romanNumbers maps roman numerals I through X. Anything else that slips
// through defaults to sequel number 1.
var romanNumbers = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5,
	"vi": 6, "vii": 7, "viii": 8, "ix": 9, "x": 10,
}

// sequelMatcher pairs a pattern with the rule turning its captures into a
// sequel number.
type sequelMatcher struct {
	re     *regexp.Regexp
	number func(m []string) int
}

func arabicNumber(m []string) int { return atoiDefault(m[2], 1) }

func romanNumber(m []string) int {
	if n, ok := romanNumbers[strings.ToLower(m[2])]; ok {
		return n
	}
	return 1
}

// sequelMatchers is tried in order and the first match wins. Order matters:
// the later patterns are broader and would over-match if tried first.
var sequelMatchers = []sequelMatcher{
	{regexp.MustCompile(`^(.+?)\s+(\d{1,2})$`), arabicNumber},
	{regexp.MustCompile(`(?i)^(.+?)\s+(i{1,3}|iv|vi{0,3}|ix|x)$`), romanNumber},
	{regexp.MustCompile(`(?i)^(.+?)\s+part\s+(\d{1,2})$`), arabicNumber},
	{regexp.MustCompile(`(?i)^(.+?)\s+chapter\s+(\d{1,2})$`), arabicNumber},
	{regexp.MustCompile(`(?i)^(.+?)\s+volume\s+(\d{1,2})$`), arabicNumber},
}

// subtitleMatchers are broader still: they split a title from a subtitle.
// A subtitle only counts as a sequel when it contains an indicator word.
var subtitleMatchers = []*regexp.Regexp{
	regexp.MustCompile(`^(.+?)\s*:\s*(.+)$`),
	regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`),
}

// sequelIndicators is the vocabulary of subtitle words that mark a sequel.
var sequelIndicators = map[string]bool{
	"reloaded": true, "revolutions": true, "awakens": true, "returns": true,
	"resurrection": true, "resurrections": true, "revenge": true,
	"rises": true, "begins": true, "origins": true, "legacy": true,
	"genesis": true, "apocalypse": true, "retribution": true,
	"redemption": true, "salvation": true, "forever": true, "reborn": true,
	"evolution": true, "endgame": true,
}

// ExtractSequel detects sequel structure in a filename: trailing numerals,
// roman numerals, Part/Chapter/Volume markers, then indicator-word
// subtitles. Returns nil when no pattern matches.
func ExtractSequel(filename string) *SequelInfo {
	clean := Clean(filename)
	for _, m := range sequelMatchers {
		g := m.re.FindStringSubmatch(clean)
		if g == nil {
			continue
		}
		return &SequelInfo{
			BaseTitle: strings.TrimSpace(g[1]),
			Number:    m.number(g),
		}
	}
	for _, re := range subtitleMatchers {
		g := re.FindStringSubmatch(clean)
		if g == nil {
			continue
		}
		subtitle := strings.TrimSpace(g[2])
		if !hasSequelIndicator(subtitle) {
			continue
		}
		// True ordering among same-named subtitle entries is left to
		// saga clustering.
		return &SequelInfo{
			BaseTitle:   strings.TrimSpace(g[1]),
			Number:      1,
			HasSubtitle: true,
			Subtitle:    subtitle,
		}
	}
	return nil
}

func hasSequelIndicator(subtitle string) bool {
	for _, w := range strings.Fields(strings.ToLower(subtitle)) {
		if sequelIndicators[strings.Trim(w, ",!?.")] {
			return true
		}
	}
	return false
}
