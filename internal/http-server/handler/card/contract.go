package card

import (
	"context"

	"card-binder/internal/domain"
	"card-binder/internal/usecase/canvas"
	"card-binder/internal/usecase/workspace"
	"card-binder/internal/worker"
)

type workspaceUsecase interface {
	UploadToCanvas(ctx context.Context, src worker.Source) (canvas.Snapshot, error)
	PasteToCanvas(ctx context.Context, dataURL string) (canvas.Snapshot, error)
	UploadToBinder(ctx context.Context, sources []worker.Source) *workspace.UploadReport
	SetTransform(t domain.Transform) (canvas.Snapshot, error)
	Wheel(deltaY float64, at domain.Point) canvas.Snapshot
	Zoom(zoom float64, at domain.Point) canvas.Snapshot
	Canvas() canvas.Snapshot
	RenderCanvas() (*domain.RasterImage, error)
	DownloadCard(ctx context.Context, name, tags string) (*domain.Export, error)
	ExportCollage(ctx context.Context) (*domain.Export, error)
	Entries() []*domain.BinderEntry
	Reorder(ids []domain.EntryID) ([]*domain.BinderEntry, error)
	Remove(id domain.EntryID) error
	Open(id domain.EntryID) ([]byte, string, error)
}

type noticeBoard interface {
	List() []domain.Notice
	Dismiss(id string) error
}
