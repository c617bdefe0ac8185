// Package source lists and opens media files from configured storage
// backends. The catalog never touches the filesystem directly; it goes
// through a Source so local directories and remote hosts look the same.
package source

import (
	"context"
	"errors"
	"io"

	"github.com/vmunix/mediatheque/internal/catalog"
)

// ErrNotFound indicates the requested file doesn't exist on the backend.
var ErrNotFound = errors.New("file not found")

// Source lists media files per category and opens them for streaming.
type Source interface {
	// List returns the media file paths under the category's directory.
	// The result is sorted and contains only known media extensions.
	List(ctx context.Context, category catalog.Category) ([]string, error)

	// Open returns a reader over the file at path. Callers that need
	// range requests can type-assert to io.ReadSeeker.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Size returns the file size in bytes.
	Size(ctx context.Context, path string) (int64, error)
}
