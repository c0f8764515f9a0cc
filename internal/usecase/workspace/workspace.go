package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"card-binder/internal/domain"
	"card-binder/internal/usecase/canvas"
	"card-binder/internal/usecase/notice"
	"card-binder/internal/worker"

	"github.com/wb-go/wbf/zlog"
)

const (
	OpCanvasUpload  = "canvas_upload"
	OpTransform     = "canvas_transform"
	OpZoom          = "canvas_zoom"
	OpRender        = "canvas_render"
	OpDownload      = "card_download"
	OpBinderUpload  = "binder_upload"
	OpReorder       = "binder_reorder"
	OpRemove        = "binder_remove"
	OpCollageExport = "collage_export"
)

type Radii struct {
	Card    float64
	Collage float64
}

func DefaultRadii() Radii {
	return Radii{Card: domain.CardCornerRadius, Collage: domain.CollageCornerRadius}
}

// Workspace is the page session: one editing surface, one binder, and the
// plumbing between them.
type Workspace struct {
	surface   surface
	gallery   gallery
	loader    loader
	exporter  exporter
	sink      sink
	publisher publisher
	radii     Radii
	logger    *zlog.Zerolog
	now       func() time.Time

	// serializes multi-step mutations across surface and gallery
	mu sync.Mutex
}

func NewWorkspace(
	surface surface,
	gallery gallery,
	loader loader,
	exporter exporter,
	sink sink,
	publisher publisher,
	radii Radii,
	logger *zlog.Zerolog,
) *Workspace {
	return &Workspace{
		surface:   surface,
		gallery:   gallery,
		loader:    loader,
		exporter:  exporter,
		sink:      sink,
		publisher: publisher,
		radii:     radii,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadToCanvas decodes one file and places it on the surface, replacing
// whatever was there.
func (w *Workspace) UploadToCanvas(ctx context.Context, src worker.Source) (canvas.Snapshot, error) {
	var res worker.Result
	w.loader.Load(ctx, []worker.Source{src}, func(r worker.Result) {
		res = r
	})
	if res.Err != nil {
		return canvas.Snapshot{}, w.fail(OpCanvasUpload, res.Err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.surface.Place(res.Raster, res.Image); err != nil {
		return canvas.Snapshot{}, w.fail(OpCanvasUpload, err)
	}

	w.logger.Info().
		Str("file", res.Name).
		Str("format", string(res.Raster.Format())).
		Msg("Canvas image loaded")

	return w.surface.Snapshot(), nil
}

// PasteToCanvas places an image pasted as a data: URL.
func (w *Workspace) PasteToCanvas(ctx context.Context, dataURL string) (canvas.Snapshot, error) {
	src, err := worker.DataURLSource("pasted", dataURL)
	if err != nil {
		return canvas.Snapshot{}, w.fail(OpCanvasUpload, err)
	}
	return w.UploadToCanvas(ctx, src)
}

type Failure struct {
	Name string
	Err  error
}

type UploadReport struct {
	Entries  []*domain.BinderEntry
	Failures []Failure
}

// UploadToBinder decodes every source in parallel and appends each one to the
// binder unclipped, in the order the decodes finish. Files that fail are
// reported and skipped.
func (w *Workspace) UploadToBinder(ctx context.Context, sources []worker.Source) *UploadReport {
	report := &UploadReport{}

	w.loader.Load(ctx, sources, func(r worker.Result) {
		if r.Err != nil {
			report.Failures = append(report.Failures, Failure{Name: r.Name, Err: w.fail(OpBinderUpload, r.Err)})
			return
		}

		w.mu.Lock()
		entry, err := w.gallery.Insert(r.Raster, domain.SourceUpload)
		w.mu.Unlock()
		if err != nil {
			report.Failures = append(report.Failures, Failure{Name: r.Name, Err: w.fail(OpBinderUpload, err)})
			return
		}
		report.Entries = append(report.Entries, entry)
	})

	w.logger.Info().
		Int("files", len(sources)).
		Int("inserted", len(report.Entries)).
		Int("failed", len(report.Failures)).
		Msg("Binder upload finished")

	return report
}

func (w *Workspace) SetTransform(t domain.Transform) (canvas.Snapshot, error) {
	if err := w.surface.SetTransform(t); err != nil {
		return canvas.Snapshot{}, w.fail(OpTransform, err)
	}
	return w.surface.Snapshot(), nil
}

// Wheel applies a mouse wheel delta around the pointer.
func (w *Workspace) Wheel(deltaY float64, at domain.Point) canvas.Snapshot {
	return w.surface.ZoomBy(deltaY, at)
}

func (w *Workspace) Zoom(zoom float64, at domain.Point) canvas.Snapshot {
	return w.surface.ZoomTo(zoom, at)
}

func (w *Workspace) Canvas() canvas.Snapshot {
	return w.surface.Snapshot()
}

// RenderCanvas rasterizes the surface as shown, without clipping.
func (w *Workspace) RenderCanvas() (*domain.RasterImage, error) {
	img, err := w.surface.Rasterize()
	if err != nil {
		return nil, w.fail(OpRender, err)
	}
	raster, err := w.exporter.EncodePNG(img)
	if err != nil {
		return nil, w.fail(OpRender, err)
	}
	return raster, nil
}

// DownloadCard captures the surface, clips it with the card radius, hands it
// to the download sink and keeps the clipped card in the binder.
func (w *Workspace) DownloadCard(ctx context.Context, name, tags string) (*domain.Export, error) {
	capturedAt := w.now()

	w.mu.Lock()
	img, err := w.surface.Rasterize()
	if err != nil {
		w.mu.Unlock()
		return nil, w.fail(OpDownload, err)
	}

	raster, err := w.exporter.Export(img, w.radii.Card)
	if err != nil {
		w.mu.Unlock()
		return nil, w.fail(OpDownload, err)
	}

	entry, err := w.gallery.Insert(raster, domain.SourceExport)
	w.mu.Unlock()
	if err != nil {
		return nil, w.fail(OpDownload, err)
	}

	export := &domain.Export{
		Filename:  domain.CardFilename(name, tags, capturedAt),
		Kind:      domain.ExportCard,
		Raster:    raster,
		EntryID:   entry.ID,
		CreatedAt: capturedAt,
	}

	w.deliver(ctx, export)
	return export, nil
}

// ExportCollage clips the binder strip with the collage radius and hands it
// to the download sink.
func (w *Workspace) ExportCollage(ctx context.Context) (*domain.Export, error) {
	raster, err := w.gallery.ExportCollage(ctx)
	if err != nil {
		return nil, w.fail(OpCollageExport, err)
	}

	export := &domain.Export{
		Filename:  domain.CollageFilename,
		Kind:      domain.ExportCollage,
		Raster:    raster,
		CreatedAt: w.now(),
	}

	w.deliver(ctx, export)
	return export, nil
}

// deliver never fails the export: the caller already holds the bytes and
// returns them to the browser.
func (w *Workspace) deliver(ctx context.Context, export *domain.Export) {
	if err := w.sink.Deliver(ctx, export); err != nil {
		w.logger.Error().
			Err(err).
			Str("sink", w.sink.Name()).
			Str("filename", export.Filename).
			Msg("Failed to deliver export")
	} else {
		w.logger.Info().
			Str("sink", w.sink.Name()).
			Str("filename", export.Filename).
			Str("kind", string(export.Kind)).
			Int("width", export.Raster.Width()).
			Int("height", export.Raster.Height()).
			Msg("Export delivered")
	}

	w.publisher.PublishExport(export.Event())
}

func (w *Workspace) Entries() []*domain.BinderEntry {
	return w.gallery.Entries()
}

func (w *Workspace) Reorder(ids []domain.EntryID) ([]*domain.BinderEntry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(ids) == 0 {
		return nil, w.fail(OpReorder, fmt.Errorf("%w: no ids", domain.ErrInvalidReorder))
	}
	if err := w.gallery.Reorder(ids); err != nil {
		return nil, w.fail(OpReorder, err)
	}
	return w.gallery.Entries(), nil
}

func (w *Workspace) Remove(id domain.EntryID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.gallery.Remove(id); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil
}

// Open returns an entry's payload for the full-size viewer.
func (w *Workspace) Open(id domain.EntryID) ([]byte, string, error) {
	return w.gallery.Open(id)
}

// fail posts a notice for the failures a user can act on and returns err.
func (w *Workspace) fail(operation string, err error) error {
	if !domain.IsRecoverable(err) {
		w.logger.Error().Err(err).Str("operation", operation).Msg("Operation failed")
		return err
	}

	n := notice.FromError(err, operation)
	w.logger.Warn().
		Err(err).
		Str("operation", operation).
		Str("kind", string(n.Kind)).
		Msg("Operation rejected")
	w.publisher.PublishNotice(n)
	return err
}
