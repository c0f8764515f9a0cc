package binder

import (
	"image"

	"card-binder/internal/domain"
)

type exporter interface {
	Compose(rasters []*domain.RasterImage) (image.Image, error)
	Export(img image.Image, radius float64) (*domain.RasterImage, error)
}
