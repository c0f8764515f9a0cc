package binder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"card-binder/internal/domain"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// Gallery is the ordered collection of saved cards and uploads.
type Gallery struct {
	mu       sync.RWMutex
	entries  []*domain.BinderEntry
	exporter exporter
	logger   *zlog.Zerolog
	now      func() time.Time
}

func NewGallery(exporter exporter, logger *zlog.Zerolog) *Gallery {
	return &Gallery{
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Insert appends raster as a new entry. The raster is stored as given.
func (g *Gallery) Insert(raster *domain.RasterImage, source domain.EntrySource) (*domain.BinderEntry, error) {
	if raster == nil || raster.Width() <= 0 || raster.Height() <= 0 {
		return nil, fmt.Errorf("%w: empty raster", domain.ErrInvalidDimensions)
	}

	entry := &domain.BinderEntry{
		ID:           domain.EntryID(uuid.New().String()),
		Raster:       raster,
		Presentation: domain.ThumbnailPresentation(),
		Source:       source,
		CreatedAt:    g.now(),
	}

	g.mu.Lock()
	g.entries = append(g.entries, entry)
	position := len(g.entries) - 1
	g.mu.Unlock()

	g.logger.Info().
		Str("entry_id", string(entry.ID)).
		Str("source", string(source)).
		Int("position", position).
		Int("width", raster.Width()).
		Int("height", raster.Height()).
		Msg("Binder entry inserted")

	return entry, nil
}

// Reorder replaces the order with ids, which must be a permutation of the
// current entries. On rejection the order is left as it was.
func (g *Gallery) Reorder(ids []domain.EntryID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(ids) != len(g.entries) {
		return fmt.Errorf("%w: got %d ids for %d entries", domain.ErrInvalidReorder, len(ids), len(g.entries))
	}

	byID := make(map[domain.EntryID]*domain.BinderEntry, len(g.entries))
	for _, e := range g.entries {
		byID[e.ID] = e
	}

	reordered := make([]*domain.BinderEntry, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %q", domain.ErrInvalidReorder, id)
		}
		delete(byID, id)
		reordered = append(reordered, e)
	}

	g.entries = reordered

	g.logger.Debug().Int("entries", len(reordered)).Msg("Binder reordered")
	return nil
}

func (g *Gallery) Remove(id domain.EntryID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, e := range g.entries {
		if e.ID == id {
			g.entries = append(g.entries[:i:i], g.entries[i+1:]...)
			g.logger.Info().Str("entry_id", string(id)).Msg("Binder entry removed")
			return nil
		}
	}

	return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
}

// Entries returns the entries in display order.
func (g *Gallery) Entries() []*domain.BinderEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*domain.BinderEntry, len(g.entries))
	copy(out, g.entries)
	return out
}

func (g *Gallery) Get(id domain.EntryID) (*domain.BinderEntry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, e := range g.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
}

func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Open returns the stored payload of an entry for full-size viewing.
func (g *Gallery) Open(id domain.EntryID) ([]byte, string, error) {
	e, err := g.Get(id)
	if err != nil {
		return nil, "", err
	}
	return e.Raster.Data(), e.Raster.MimeType(), nil
}

// ExportCollage lays out every entry in display order and clips the strip
// with the collage corner radius.
func (g *Gallery) ExportCollage(ctx context.Context) (*domain.RasterImage, error) {
	entries := g.Entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: binder is empty", domain.ErrInvalidDimensions)
	}

	rasters := make([]*domain.RasterImage, len(entries))
	for i, e := range entries {
		rasters[i] = e.Raster
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	strip, err := g.exporter.Compose(rasters)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raster, err := g.exporter.Export(strip, domain.CollageCornerRadius)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Int("entries", len(entries)).
		Int("width", raster.Width()).
		Int("height", raster.Height()).
		Msg("Collage exported")

	return raster, nil
}
