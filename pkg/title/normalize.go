// Package title parses media filenames: cleaning, display formatting,
// episode and sequel markers, and title similarity.
package title

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mediaExtensions are the video and audio extensions stripped during cleaning.
var mediaExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".mpg": true, ".mpeg": true,
	".ts": true,
	".mp3": true, ".flac": true, ".ogg": true, ".wav": true, ".m4a": true,
	".aac": true, ".wma": true, ".opus": true,
}

// qualityTokens is the fixed vocabulary of release markers removed from
// titles, compared case-insensitively as whole words.
var qualityTokens = map[string]bool{
	"2160p": true, "1080p": true, "720p": true, "480p": true, "4k": true,
	"uhd": true, "hdr": true, "10bit": true, "8bit": true,
	"bluray": true, "brrip": true, "bdrip": true, "webrip": true,
	"webdl": true, "hdtv": true, "dvdrip": true, "remux": true,
	"x264": true, "x265": true, "h264": true, "h265": true, "hevc": true,
	"avc": true, "xvid": true, "divx": true, "av1": true,
	"aac": true, "ac3": true, "dts": true, "truehd": true, "atmos": true,
	"truefrench": true, "vostfr": true, "vost": true, "vf": true,
	"vff": true, "vfq": true, "multi": true, "subfrench": true,
	"proper": true, "repack": true, "extended": true, "remastered": true,
	"unrated": true, "limited": true, "internal": true,
}

var (
	bracketRegex     = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
	yearTokenRegex   = regexp.MustCompile(`^(19|20)\d{2}$`)
	yearSearchRegex  = regexp.MustCompile(`\b((19|20)\d{2})\b`)
	tightHyphenRegex = regexp.MustCompile(`(\S)-(\S)`)
)

// Clean strips a filename down to a comparable title while preserving
// subtitle punctuation (colons and spaced hyphens). Removes the media
// extension, bracketed segments, quality markers and year tokens, and
// replaces dot and underscore separators with spaces.
//
// Pattern extraction runs against this form, not against the display title.
func Clean(filename string) string {
	s := filename
	if ext := strings.ToLower(filepath.Ext(s)); mediaExtensions[ext] {
		s = s[:len(s)-len(ext)]
	}
	s = bracketRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Hyphens bound to words are separators; spaced hyphens delimit subtitles.
	for tightHyphenRegex.MatchString(s) {
		s = tightHyphenRegex.ReplaceAllString(s, "$1 $2")
	}

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		lower := strings.ToLower(f)
		if qualityTokens[lower] || yearTokenRegex.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// IsMediaFile reports whether the filename carries a known video or
// audio extension.
func IsMediaFile(filename string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Normalize cleans a filename into a bare comparable title: all separator
// characters become spaces and subtitle punctuation is dropped.
func Normalize(filename string) string {
	s := Clean(filename)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, ":", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Format produces a display title from a filename, title-casing each word.
func Format(filename string) string {
	caser := cases.Title(language.Und)
	return caser.String(strings.ToLower(Normalize(filename)))
}

// Slug produces the strict lowercase underscore form used in identifiers.
// Only ASCII alphanumerics survive; accents are folded first.
func Slug(filename string) string {
	s := strings.ToLower(Normalize(filename))
	s = StripDiacritics(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// Year returns the first 19xx/20xx token found in the filename.
func Year(filename string) (int, bool) {
	m := yearSearchRegex.FindString(filename)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// genreTokens maps filename tokens to display genres, French UI first.
var genreTokens = map[string]string{
	"action":       "Action",
	"comedie":      "Comédie",
	"comedy":       "Comédie",
	"drame":        "Drame",
	"drama":        "Drame",
	"horreur":      "Horreur",
	"horror":       "Horreur",
	"thriller":     "Thriller",
	"animation":    "Animation",
	"documentaire": "Documentaire",
	"documentary":  "Documentaire",
	"western":      "Western",
	"fantastique":  "Fantastique",
	"fantasy":      "Fantastique",
	"scifi":        "Science-fiction",
}

// Genre returns a best-effort genre derived from filename tokens,
// including tokens inside bracketed tags.
func Genre(filename string) (string, bool) {
	s := filename
	if ext := strings.ToLower(filepath.Ext(s)); mediaExtensions[ext] {
		s = s[:len(s)-len(ext)]
	}
	s = strings.ToLower(s)
	for _, sep := range []string{".", "_", "-", "[", "]", "(", ")"} {
		s = strings.ReplaceAll(s, sep, " ")
	}
	for _, f := range strings.Fields(StripDiacritics(s)) {
		if g, ok := genreTokens[f]; ok {
			return g, true
		}
	}
	return "", false
}

// StripDiacritics removes combining marks after canonical decomposition.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
