package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/pkg/title"
)

// Local serves media from a directory tree with one subdirectory per
// category (films/, series/, musiques/).
type Local struct {
	root string
}

// NewLocal creates a local source rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// List walks the category subdirectory and returns media file paths,
// sorted for deterministic output. A missing subdirectory is an empty
// category, not an error.
func (l *Local) List(ctx context.Context, category catalog.Category) ([]string, error) {
	dir := filepath.Join(l.root, string(category))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories hold sidecar data, not media.
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if title.IsMediaFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Open returns the file for streaming. The returned *os.File satisfies
// io.ReadSeeker, so HTTP range requests work against it.
func (l *Local) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if err := l.check(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Size returns the file size in bytes.
func (l *Local) Size(_ context.Context, path string) (int64, error) {
	if err := l.check(path); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("stat %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// check rejects paths outside the source root.
func (l *Local) check(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	root, err := filepath.Abs(l.root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("path %s escapes source root: %w", path, ErrNotFound)
	}
	return nil
}
