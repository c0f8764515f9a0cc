package operations

import (
	"image"
	"image/color"
	"testing"

	"card-binder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounder_CornersTransparentInsideOpaque(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		radius        float64
	}{
		{"card", 750, 1050, 30},
		{"collage", 500, 361, 15},
		{"small radius", 40, 60, 2},
		{"half of shorter side", 100, 60, 30},
		{"square stadium", 64, 64, 32},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			src := solidImage(tc.width, tc.height, color.NRGBA{R: 200, G: 40, B: 90, A: 255})

			out, err := NewRounder().Process(src, tc.radius)
			require.NoError(t, err)

			a.Equal(tc.width, out.Bounds().Dx())
			a.Equal(tc.height, out.Bounds().Dy())

			w, h := tc.width-1, tc.height-1
			for _, p := range []image.Point{{0, 0}, {w, 0}, {0, h}, {w, h}} {
				a.Equal(uint8(0), out.NRGBAAt(p.X, p.Y).A, "corner %v", p)
			}

			a.Equal(uint8(255), out.NRGBAAt(tc.width/2, tc.height/2).A)

			// Edge midpoints lie on straight segments of the path.
			r := int(tc.radius)
			if r < tc.width/2 {
				a.Equal(uint8(255), out.NRGBAAt(tc.width/2, 0).A)
				a.Equal(uint8(255), out.NRGBAAt(tc.width/2, h).A)
			}
			if r < tc.height/2 {
				a.Equal(uint8(255), out.NRGBAAt(0, tc.height/2).A)
				a.Equal(uint8(255), out.NRGBAAt(w, tc.height/2).A)
			}
		})
	}
}

func TestRounder_InsidePixelsUnchanged(t *testing.T) {
	src := gradientImage(120, 160)

	out, err := NewRounder().Process(src, 20)
	require.NoError(t, err)

	for y := 20; y < 140; y++ {
		for x := 0; x < 120; x++ {
			if !assert.Equal(t, src.NRGBAAt(x, y), out.NRGBAAt(x, y), "pixel %d,%d", x, y) {
				return
			}
		}
	}
}

func TestRounder_OutsidePixelsFullyTransparent(t *testing.T) {
	src := solidImage(100, 100, color.NRGBA{R: 255, A: 255})

	out, err := NewRounder().Process(src, 30)
	require.NoError(t, err)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := out.NRGBAAt(x, y)
			if c.A == 0 {
				assert.Equal(t, color.NRGBA{}, c)
			} else {
				assert.Equal(t, uint8(255), c.A, "no partial coverage at %d,%d", x, y)
			}
		}
	}
}

func TestRounder_Idempotent(t *testing.T) {
	rounder := NewRounder()
	src := gradientImage(90, 130)

	once, err := rounder.Process(src, 25)
	require.NoError(t, err)

	twice, err := rounder.Process(once, 25)
	require.NoError(t, err)

	assert.Equal(t, once.Pix, twice.Pix)
}

func TestRounder_TranslucentSourceKept(t *testing.T) {
	src := solidImage(50, 50, color.NRGBA{R: 10, G: 20, B: 30, A: 77})

	out, err := NewRounder().Process(src, 10)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 77}, out.NRGBAAt(25, 25))
}

func TestRounder_ZeroRadiusCopies(t *testing.T) {
	src := gradientImage(30, 40)

	out, err := NewRounder().Process(src, 0)
	require.NoError(t, err)

	assert.Equal(t, src.Pix, out.Pix)
}

func TestRounder_OversizedRadiusAccepted(t *testing.T) {
	for _, radius := range []float64{40, 100, 500} {
		src := solidImage(40, 80, color.NRGBA{G: 255, A: 255})

		out, err := NewRounder().Process(src, radius)
		require.NoError(t, err)

		assert.Equal(t, 40, out.Bounds().Dx())
		assert.Equal(t, 80, out.Bounds().Dy())
		for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 79}, {39, 79}} {
			assert.Equal(t, uint8(0), out.NRGBAAt(p.X, p.Y).A, "radius %v corner %v", radius, p)
		}
		assert.Equal(t, uint8(255), out.NRGBAAt(20, 40).A, "radius %v centre", radius)

		opaque := 0
		for i := 3; i < len(out.Pix); i += 4 {
			if out.Pix[i] == 255 {
				opaque++
			}
		}
		assert.Less(t, opaque, 40*80, "radius %v clips something", radius)
	}
}

func TestRounder_OversizedRadiusSaturates(t *testing.T) {
	src := gradientImage(40, 80)

	at100, err := NewRounder().Process(src, 100)
	require.NoError(t, err)
	at500, err := NewRounder().Process(src, 500)
	require.NoError(t, err)

	assert.Equal(t, at100.Pix, at500.Pix)

	again, err := NewRounder().Process(at500, 500)
	require.NoError(t, err)
	assert.Equal(t, at500.Pix, again.Pix)
}

func TestRounder_InvalidInput(t *testing.T) {
	rounder := NewRounder()

	_, err := rounder.Process(image.NewNRGBA(image.Rect(0, 0, 0, 10)), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = rounder.Process(image.NewNRGBA(image.Rect(0, 0, 10, 0)), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = rounder.Process(nil, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = rounder.Process(solidImage(10, 10, color.NRGBA{A: 255}), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
}

func TestRounder_OffsetBounds(t *testing.T) {
	src := solidImage(60, 60, color.NRGBA{B: 255, A: 255}).SubImage(image.Rect(10, 10, 50, 50))

	out, err := NewRounder().Process(src, 8)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 40), out.Bounds())
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(20, 20).A)
}
