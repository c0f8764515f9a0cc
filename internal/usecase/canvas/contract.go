package canvas

import (
	"image"

	"card-binder/internal/domain"
)

type renderer interface {
	Render(img image.Image, t domain.Transform, vp domain.Viewport) (image.Image, error)
}
