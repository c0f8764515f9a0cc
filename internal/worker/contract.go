package worker

import (
	"image"

	"card-binder/internal/domain"
)

type decoder interface {
	Decode(data []byte) (image.Image, *domain.RasterImage, error)
}
