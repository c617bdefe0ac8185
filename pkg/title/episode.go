package title

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// episodeRegex matches a leading series name followed by an SxxEyy marker,
// separated by a dot, underscore or space. Dots and underscores have been
// turned into spaces by Clean before this runs.
var episodeRegex = regexp.MustCompile(`(?i)^(.+?)[ ._]S(\d{1,2})[ ._]?E(\d{1,2})`)

// EpisodeInfo describes a detected series episode marker.
type EpisodeInfo struct {
	Series  string
	Season  int
	Episode int
	Code    string // zero-padded, e.g. "S01E02"
}

// ExtractEpisode detects series/episode structure in a filename.
// Returns nil when the filename carries no SxxEyy marker.
func ExtractEpisode(filename string) *EpisodeInfo {
	m := episodeRegex.FindStringSubmatch(Clean(filename))
	if m == nil {
		return nil
	}
	series := strings.NewReplacer(".", " ", "_", " ").Replace(m[1])
	info := &EpisodeInfo{
		Series:  strings.Join(strings.Fields(series), " "),
		Season:  atoiDefault(m[2], 1),
		Episode: atoiDefault(m[3], 1),
	}
	info.Code = fmt.Sprintf("S%02dE%02d", info.Season, info.Episode)
	return info
}

// atoiDefault parses s, falling back to def on an empty or malformed capture.
func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
