package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"card-binder/internal/domain"
	"card-binder/internal/repository/download"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testExport(t *testing.T, filename string) *domain.Export {
	t.Helper()
	raster, err := domain.NewRasterImage([]byte("\x89PNG fake payload"), domain.FormatPNG, 4, 4)
	require.NoError(t, err)
	return &domain.Export{
		Filename:  filename,
		Kind:      domain.ExportCard,
		Raster:    raster,
		CreatedAt: time.Now(),
	}
}

func TestFileRepository_Deliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	repo, err := NewFileRepository(dir, &zlog.Logger)
	require.NoError(t, err)

	export := testExport(t, "defaultName_defaultTag_2024-01-02T03_04_05_678Z.png")
	require.NoError(t, repo.Deliver(context.Background(), export))

	data, err := os.ReadFile(filepath.Join(dir, export.Filename))
	require.NoError(t, err)
	assert.Equal(t, export.Raster.Data(), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileRepository_OverwritesSameName(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, &zlog.Logger)
	require.NoError(t, err)

	require.NoError(t, repo.Deliver(context.Background(), testExport(t, domain.CollageFilename)))
	require.NoError(t, repo.Deliver(context.Background(), testExport(t, domain.CollageFilename)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRepository_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, &zlog.Logger)
	require.NoError(t, err)

	require.NoError(t, repo.Deliver(context.Background(), testExport(t, "../escape.png")))

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)

	err = repo.Deliver(context.Background(), testExport(t, ".."))
	assert.ErrorIs(t, err, download.ErrInvalidFilename)
}

func TestFileRepository_CancelledContext(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir(), &zlog.Logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Deliver(ctx, testExport(t, "a.png")), context.Canceled)
}
