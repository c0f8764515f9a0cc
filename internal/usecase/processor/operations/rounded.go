package operations

import (
	"fmt"
	"image"
	"math"

	"card-binder/internal/domain"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so that a Bézier segment follows a
// quarter circle.
const kappa = 0.5522847498307936

// coverageThreshold is the minimum mask coverage for a pixel to count as
// inside the rounded rectangle.
const coverageThreshold = 128

type Rounder struct{}

func NewRounder() *Rounder {
	return &Rounder{}
}

// Process clips img to a rectangle whose corners are quarter-circle arcs of
// the given radius. Pixels inside the path are copied unchanged, pixels
// outside become fully transparent. The radius is not clamped; oversized
// values saturate at the largest arc the image can hold.
func (r *Rounder) Process(img image.Image, radius float64) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", domain.ErrInvalidDimensions)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, width, height)
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: corner radius %v", domain.ErrInvalidDimensions, radius)
	}

	src := imaging.Clone(img)
	mask := roundedMask(width, height, radius)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		maskRow := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		srcRow := src.Pix[y*src.Stride : y*src.Stride+width*4]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x, coverage := range maskRow {
			if coverage >= coverageThreshold {
				copy(dstRow[x*4:x*4+4], srcRow[x*4:x*4+4])
			}
		}
	}

	return dst, nil
}

// roundedMask traces the clip path. A corner arc spans at most half the
// width and half the height, so radii past min(W,H)/2 give a stadium or
// ellipse.
func roundedMask(width, height int, radius float64) *image.Alpha {
	w, h := float32(width), float32(height)
	rx := float32(math.Min(radius, float64(width)/2))
	ry := float32(math.Min(radius, float64(height)/2))
	kx, ky := float32(kappa)*rx, float32(kappa)*ry

	z := vector.NewRasterizer(width, height)
	z.MoveTo(rx, 0)
	z.LineTo(w-rx, 0)
	z.CubeTo(w-rx+kx, 0, w, ry-ky, w, ry)
	z.LineTo(w, h-ry)
	z.CubeTo(w, h-ry+ky, w-rx+kx, h, w-rx, h)
	z.LineTo(rx, h)
	z.CubeTo(rx-kx, h, 0, h-ry+ky, 0, h-ry)
	z.LineTo(0, ry)
	z.CubeTo(0, ry-ky, rx-kx, 0, rx, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
