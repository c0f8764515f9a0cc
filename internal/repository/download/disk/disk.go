package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"card-binder/internal/domain"
	"card-binder/internal/repository/download"

	"github.com/wb-go/wbf/zlog"
)

// FileRepository saves exports into a downloads directory.
type FileRepository struct {
	dir    string
	logger *zlog.Zerolog
}

func NewFileRepository(dir string, logger *zlog.Zerolog) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", download.ErrStorageError, dir, err)
	}
	return &FileRepository{
		dir:    dir,
		logger: logger,
	}, nil
}

func (r *FileRepository) Deliver(ctx context.Context, export *domain.Export) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := download.CleanFilename(export.Filename)
	if err != nil {
		return err
	}

	path := filepath.Join(r.dir, name)
	tmp, err := os.CreateTemp(r.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("%w: %v", download.ErrStorageError, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(export.Raster.Data()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", download.ErrStorageError, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", download.ErrStorageError, name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", download.ErrStorageError, name, err)
	}

	r.logger.Info().
		Str("path", path).
		Int64("size", export.Raster.Size()).
		Msg("Export saved to disk")

	return nil
}

func (r *FileRepository) Name() string {
	return "disk"
}
