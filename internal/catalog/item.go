// Package catalog turns flat file listings into the grouped, sorted media
// catalog served to clients: classification, stable identifiers, series and
// saga grouping, presentation ordering and search.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the media kind derived from the category a file was found in.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
	KindMusic  Kind = "music"
)

// Category is a top-level media bucket.
type Category string

const (
	CategoryFilms    Category = "films"
	CategorySeries   Category = "series"
	CategoryMusiques Category = "musiques"
)

// Categories lists all categories in a fixed order.
var Categories = []Category{CategoryFilms, CategorySeries, CategoryMusiques}

// ErrUnknownCategory indicates a category identifier outside the closed enum.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory normalizes a category identifier ("Films", "films") into the
// closed enum. Unknown values are rejected here so the grouping logic never
// sees them.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "films":
		return CategoryFilms, nil
	case "series":
		return CategorySeries, nil
	case "musiques":
		return CategoryMusiques, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Kind maps a category to its media kind.
func (c Category) Kind() Kind {
	switch c {
	case CategorySeries:
		return KindSeries
	case CategoryMusiques:
		return KindMusic
	default:
		return KindMovie
	}
}

// MediaItem is one discovered media file.
type MediaItem struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	OriginalFileName string `json:"originalFileName"`
	Path             string `json:"path"`
	Kind             Kind   `json:"type"`
	Genre            string `json:"genre,omitempty"`
	Year             int    `json:"year,omitempty"`

	// Music tag fields
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`

	// External enrichment
	Poster               string `json:"poster,omitempty"`
	Backdrop             string `json:"backdrop,omitempty"`
	LocalizedTitle       string `json:"localizedTitle,omitempty"`
	LocalizedDescription string `json:"localizedDescription,omitempty"`

	// Ordering within a group
	Season  int `json:"season,omitempty"`
	Episode int `json:"episode,omitempty"`
	Sequel  int `json:"sequel,omitempty"`
}

// Item is either a single MediaItem or a synthesized group carrying ordered
// children. Groups inherit display fields from their representative child.
type Item struct {
	MediaItem
	IsGroup      bool        `json:"isGroup,omitempty"`
	Episodes     []MediaItem `json:"episodes,omitempty"`
	EpisodeCount int         `json:"episodeCount,omitempty"`
}
