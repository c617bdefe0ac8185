// Package metadata looks up movie and series metadata from TMDB, with an
// SQLite-backed response cache.
package metadata

import "errors"

// ErrNotFound is returned when a title is unknown to the metadata provider.
var ErrNotFound = errors.New("title not found")

// Result is the enrichment returned for a title lookup.
type Result struct {
	Poster               string `json:"poster,omitempty"`
	Backdrop             string `json:"backdrop,omitempty"`
	LocalizedTitle       string `json:"localizedTitle,omitempty"`
	LocalizedDescription string `json:"localizedDescription,omitempty"`
}
