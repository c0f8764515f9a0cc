package workspace

import (
	"context"
	"image"

	"card-binder/internal/domain"
	"card-binder/internal/usecase/canvas"
	"card-binder/internal/worker"
)

type surface interface {
	Place(raster *domain.RasterImage, img image.Image) error
	CurrentTransform() domain.Transform
	SetTransform(t domain.Transform) error
	ZoomBy(deltaY float64, point domain.Point) canvas.Snapshot
	ZoomTo(zoom float64, point domain.Point) canvas.Snapshot
	Snapshot() canvas.Snapshot
	Rasterize() (image.Image, error)
}

type gallery interface {
	Insert(raster *domain.RasterImage, source domain.EntrySource) (*domain.BinderEntry, error)
	Reorder(ids []domain.EntryID) error
	Remove(id domain.EntryID) error
	Entries() []*domain.BinderEntry
	Open(id domain.EntryID) ([]byte, string, error)
	ExportCollage(ctx context.Context) (*domain.RasterImage, error)
}

type loader interface {
	Load(ctx context.Context, sources []worker.Source, apply func(worker.Result))
}

type exporter interface {
	Export(img image.Image, radius float64) (*domain.RasterImage, error)
	EncodePNG(img image.Image) (*domain.RasterImage, error)
}

type sink interface {
	Deliver(ctx context.Context, export *domain.Export) error
	Name() string
}

type publisher interface {
	PublishNotice(n domain.Notice)
	PublishExport(e domain.ExportEvent)
}
