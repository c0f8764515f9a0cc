package operations

import (
	"fmt"
	"image"

	"card-binder/internal/domain"

	"github.com/disintegration/imaging"
)

type Collager struct {
	thumbnailer *Thumbnailer
	height      int
}

func NewCollager(thumbnailer *Thumbnailer, height int) *Collager {
	return &Collager{
		thumbnailer: thumbnailer,
		height:      height,
	}
}

// Process lays the images out left to right, each in its presentation box,
// on a transparent strip of fixed height. The strip is as wide as the sum of
// the box widths.
func (c *Collager) Process(images []image.Image) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: empty collage", domain.ErrInvalidDimensions)
	}

	box := c.thumbnailer.Box()
	width := box.Width * len(images)
	if width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("%w: collage %dx%d", domain.ErrInvalidDimensions, width, c.height)
	}

	canvas := imaging.New(width, c.height, image.Transparent)
	for i, img := range images {
		thumb, err := c.thumbnailer.Process(img)
		if err != nil {
			return nil, fmt.Errorf("thumbnail %d: %w", i, err)
		}
		canvas = imaging.Paste(canvas, thumb, image.Pt(i*box.Width, 0))
	}

	return canvas, nil
}
