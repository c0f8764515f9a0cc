package operations

import (
	"fmt"
	"image"

	"card-binder/internal/domain"

	xdraw "golang.org/x/image/draw"
)

type Thumbnailer struct {
	box domain.Presentation
}

func NewThumbnailer(box domain.Presentation) *Thumbnailer {
	return &Thumbnailer{box: box}
}

// Process draws img into the fixed presentation box. The aspect ratio is not
// preserved: an image whose ratio differs from the box is stretched.
func (t *Thumbnailer) Process(img image.Image) (*image.RGBA, error) {
	if t.box.Width <= 0 || t.box.Height <= 0 {
		return nil, fmt.Errorf("%w: presentation box %dx%d", domain.ErrInvalidDimensions, t.box.Width, t.box.Height)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}

	return resizeImage(img, t.box.Width, t.box.Height), nil
}

func (t *Thumbnailer) Box() domain.Presentation {
	return t.box
}

func resizeImage(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
