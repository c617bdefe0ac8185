package catalog

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vmunix/mediatheque/pkg/title"
)

// GenerateID derives a stable identifier from a filename, an id category and
// an optional sequence hint. The 6-hex suffix hashes the raw inputs so that
// distinct filenames with colliding slugs still get distinct ids. Ids are
// embedded in player deep-link URLs, so same inputs must always produce the
// same id.
func GenerateID(filename, category, sequenceHint string) string {
	slug := title.Slug(filename)
	sum := sha1.Sum([]byte(filename + "|" + category + "|" + sequenceHint))
	suffix := hex.EncodeToString(sum[:3])
	cat := strings.ToLower(category)

	var base string
	switch {
	case cat == "episode":
		hint := sequenceHint
		if hint == "" {
			hint = "unknown"
		}
		base = fmt.Sprintf("episode_%s_%s", slug, hint)
	case cat == "film" && sequenceHint != "":
		base = fmt.Sprintf("film_%s_%s", slug, sequenceHint)
	default:
		base = cat + "_" + slug
		if sequenceHint != "" {
			base += "_" + sequenceHint
		}
	}
	return base + "_" + suffix
}
