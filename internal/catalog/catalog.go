package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediatheque/internal/audiotag"
	"github.com/vmunix/mediatheque/internal/metadata"
	"github.com/vmunix/mediatheque/pkg/title"
)

// Lister enumerates media files for a category. It is the catalog's only
// hard dependency; everything else is optional enrichment.
type Lister interface {
	List(ctx context.Context, category Category) ([]string, error)
}

// MetadataLookup enriches titles from an external movie database.
// Implementations return metadata.ErrNotFound for unknown titles.
type MetadataLookup interface {
	LookupByTitle(ctx context.Context, t string, year int, kind string) (*metadata.Result, error)
}

// TagReader extracts embedded tags from audio files.
type TagReader interface {
	ReadTags(path string) (*audiotag.Tags, error)
}

// ArtworkPutter stores embedded cover art and returns a stable reference.
type ArtworkPutter interface {
	Put(data []byte) string
}

// Service builds category listings and answers searches. It holds no
// mutable state; every call computes fresh structures, so concurrent use
// across categories needs no synchronization.
type Service struct {
	lister  Lister
	meta    MetadataLookup
	tags    TagReader
	artwork ArtworkPutter
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetadata enables external metadata enrichment for films and series.
func WithMetadata(m MetadataLookup) Option {
	return func(s *Service) { s.meta = m }
}

// WithTagReader enables audio tag extraction for music items.
func WithTagReader(r TagReader) Option {
	return func(s *Service) { s.tags = r }
}

// WithArtwork enables storing embedded cover art.
func WithArtwork(a ArtworkPutter) Option {
	return func(s *Service) { s.artwork = a }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a catalog service over the given file lister.
func New(lister Lister, opts ...Option) *Service {
	s := &Service{
		lister: lister,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CategoryItems lists one category and returns its grouped, sorted items.
// The result is a pure function of the listing: repeated calls over the
// same files yield identical ids, grouping and ordering.
func (s *Service) CategoryItems(ctx context.Context, category Category) ([]Item, error) {
	paths, err := s.lister.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", category, err)
	}

	items := make([]MediaItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, s.buildItem(p, category))
	}

	grouped := Group(items, category)
	if category != CategoryMusiques {
		s.enrich(ctx, grouped)
	}
	return grouped, nil
}

// buildItem classifies one discovered file.
func (s *Service) buildItem(path string, category Category) MediaItem {
	base := filepath.Base(path)
	it := MediaItem{
		ID:               GenerateID(base, string(category), ""),
		Title:            title.Format(base),
		OriginalFileName: title.Clean(base),
		Path:             path,
		Kind:             category.Kind(),
	}
	if y, ok := title.Year(base); ok {
		it.Year = y
	}
	if g, ok := title.Genre(base); ok {
		it.Genre = g
	}
	if category == CategoryMusiques && s.tags != nil {
		s.applyTags(&it, path)
	}
	return it
}

// applyTags overrides filename-derived fields with embedded audio tags.
func (s *Service) applyTags(it *MediaItem, path string) {
	tags, err := s.tags.ReadTags(path)
	if err != nil {
		s.logger.Debug("no audio tags", "path", path, "error", err)
		return
	}
	if tags.Title != "" {
		it.Title = tags.Title
	}
	it.Artist = tags.Artist
	it.Album = tags.Album
	if tags.Year != 0 {
		it.Year = tags.Year
	}
	if tags.Genre != "" {
		it.Genre = tags.Genre
	}
	if len(tags.Cover) > 0 && s.artwork != nil {
		it.Poster = s.artwork.Put(tags.Cover)
	}
}

// enrich decorates top-level entries with external metadata. An unknown
// title means no enrichment, never a failure.
func (s *Service) enrich(ctx context.Context, items []Item) {
	if s.meta == nil {
		return
	}
	for i := range items {
		res, err := s.meta.LookupByTitle(ctx, items[i].Title, items[i].Year, string(items[i].Kind))
		if err != nil {
			if !errors.Is(err, metadata.ErrNotFound) {
				s.logger.Debug("metadata lookup failed", "title", items[i].Title, "error", err)
			}
			continue
		}
		if res.Poster != "" {
			items[i].Poster = res.Poster
		}
		if res.Backdrop != "" {
			items[i].Backdrop = res.Backdrop
		}
		items[i].LocalizedTitle = res.LocalizedTitle
		items[i].LocalizedDescription = res.LocalizedDescription
	}
}

// AllItems computes every category concurrently and concatenates the
// results in fixed category order.
func (s *Service) AllItems(ctx context.Context) ([]Item, error) {
	results := make([][]Item, len(Categories))
	g, ctx := errgroup.WithContext(ctx)
	for i, cat := range Categories {
		g.Go(func() error {
			items, err := s.CategoryItems(ctx, cat)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Item
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Search matches a free-text query against the full flattened catalog.
func (s *Service) Search(ctx context.Context, query string) ([]MediaItem, error) {
	all, err := s.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByQuery(all, query), nil
}
