// Package audiotag reads embedded metadata from audio files.
package audiotag

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the embedded metadata of one audio file. Cover is the raw
// embedded artwork, if any; callers exchange it for an artwork reference
// rather than passing bytes around.
type Tags struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
	Cover  []byte
}

// Reader extracts tags from local audio files.
type Reader struct{}

// ReadTags reads embedded tags from the file at path. Files without
// readable tags return an error; callers treat that as "no enrichment".
func (Reader) ReadTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	t := &Tags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Genre:  strings.TrimSpace(m.Genre()),
		Year:   m.Year(),
	}
	if pic := m.Picture(); pic != nil {
		t.Cover = pic.Data
	}
	return t, nil
}
