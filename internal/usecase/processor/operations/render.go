package operations

import (
	"fmt"
	"image"
	"math"

	"card-binder/internal/domain"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

type Renderer struct {
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
	}
}

// Process renders the surface: a transparent width x height area with img,
// if any, drawn through the object transform and then the viewport.
func (r *Renderer) Process(img image.Image, t domain.Transform, vp domain.Viewport) (*image.RGBA, error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", domain.ErrInvalidDimensions, r.width, r.height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if img == nil {
		return dst, nil
	}

	m := mul(viewportMatrix(vp), objectMatrix(t))
	xdraw.BiLinear.Transform(dst, m, img, img.Bounds(), xdraw.Over, nil)
	return dst, nil
}

func objectMatrix(t domain.Transform) f64.Aff3 {
	rad := t.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return f64.Aff3{
		cos * t.ScaleX, -sin * t.ScaleY, t.Left,
		sin * t.ScaleX, cos * t.ScaleY, t.Top,
	}
}

func viewportMatrix(vp domain.Viewport) f64.Aff3 {
	return f64.Aff3{
		vp.Zoom, 0, vp.PanX,
		0, vp.Zoom, vp.PanY,
	}
}

// mul returns a·b, the transform applying b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}
