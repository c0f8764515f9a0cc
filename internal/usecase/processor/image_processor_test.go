package processor

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"card-binder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func newTestProcessor() *ImageProcessor {
	return NewImageProcessor(domain.DefaultMaxPixels, &zlog.Logger)
}

func opaque(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i-3] = 120
		img.Pix[i] = 255
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	p := newTestProcessor()
	data := pngBytes(t, opaque(400, 600))

	img, raster, err := p.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, domain.FormatPNG, raster.Format())
	assert.Equal(t, "image/png", raster.MimeType())
	assert.Equal(t, 400, raster.Width())
	assert.Equal(t, 600, raster.Height())
	assert.Equal(t, data, raster.Data())
}

func TestDecode_JPEG(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, opaque(32, 16), nil))

	_, raster, err := newTestProcessor().Decode(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, domain.FormatJPEG, raster.Format())
	assert.Equal(t, 32, raster.Width())
}

func TestDecode_Rejects(t *testing.T) {
	p := newTestProcessor()

	cases := map[string][]byte{
		"empty":     nil,
		"text":      []byte("definitely not an image"),
		"truncated": pngBytes(t, opaque(20, 20))[:40],
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := p.Decode(data)
			assert.ErrorIs(t, err, domain.ErrUndecodableImage)
		})
	}
}

// pngHeaderOnly returns a PNG that declares width x height in its IHDR chunk
// and carries no pixel data.
func pngHeaderOnly(width, height uint32) []byte {
	chunk := func(buf *bytes.Buffer, kind string, body []byte) {
		_ = binary.Write(buf, binary.BigEndian, uint32(len(body)))
		typed := append([]byte(kind), body...)
		buf.Write(typed)
		_ = binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(typed))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	buf := new(bytes.Buffer)
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk(buf, "IHDR", ihdr)
	chunk(buf, "IEND", nil)
	return buf.Bytes()
}

func TestDecode_RejectsOversizedHeader(t *testing.T) {
	p := newTestProcessor()
	data := pngHeaderOnly(60000, 60000)
	require.Less(t, len(data), 100)

	_, _, err := p.Decode(data)
	assert.ErrorIs(t, err, domain.ErrUndecodableImage)
	assert.Contains(t, err.Error(), "60000x60000")
}

func TestDecode_PixelBudget(t *testing.T) {
	p := NewImageProcessor(100, &zlog.Logger)

	_, _, err := p.Decode(pngBytes(t, opaque(20, 20)))
	assert.ErrorIs(t, err, domain.ErrUndecodableImage)

	img, raster, err := p.Decode(pngBytes(t, opaque(10, 10)))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, raster.Height())
}

func TestExport_ProducesRoundedPNG(t *testing.T) {
	p := newTestProcessor()

	raster, err := p.Export(opaque(100, 140), domain.CardCornerRadius)
	require.NoError(t, err)

	assert.Equal(t, domain.FormatPNG, raster.Format())
	assert.Equal(t, 100, raster.Width())
	assert.Equal(t, 140, raster.Height())

	decoded, err := png.Decode(bytes.NewReader(raster.Data()))
	require.NoError(t, err)

	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)
	_, _, _, a = decoded.At(99, 139).RGBA()
	assert.Equal(t, uint32(0), a)
	_, _, _, a = decoded.At(50, 70).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestExport_IdempotentThroughPNG(t *testing.T) {
	p := newTestProcessor()

	first, err := p.Export(opaque(80, 120), 20)
	require.NoError(t, err)

	img, _, err := p.Decode(first.Data())
	require.NoError(t, err)

	second, err := p.Export(img, 20)
	require.NoError(t, err)

	a, err := png.Decode(bytes.NewReader(first.Data()))
	require.NoError(t, err)
	b, err := png.Decode(bytes.NewReader(second.Data()))
	require.NoError(t, err)

	for y := 0; y < 120; y++ {
		for x := 0; x < 80; x++ {
			if !assert.Equal(t, color.NRGBAModel.Convert(a.At(x, y)), color.NRGBAModel.Convert(b.At(x, y))) {
				return
			}
		}
	}
}

func TestExport_ZeroSized(t *testing.T) {
	_, err := newTestProcessor().Export(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 30)
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)
}

func TestCompose_WidthIsSumOfThumbnails(t *testing.T) {
	p := newTestProcessor()

	var rasters []*domain.RasterImage
	for i := 0; i < 3; i++ {
		_, raster, err := p.Decode(pngBytes(t, opaque(40+i, 50)))
		require.NoError(t, err)
		rasters = append(rasters, raster)
	}

	collage, err := p.Compose(rasters)
	require.NoError(t, err)

	assert.Equal(t, 3*domain.ThumbnailWidth, collage.Bounds().Dx())
	assert.Equal(t, domain.CollageHeight, collage.Bounds().Dy())
}

func TestRender_SurfaceSize(t *testing.T) {
	out, err := newTestProcessor().Render(opaque(10, 10), domain.IdentityTransform(), domain.DefaultViewport())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight), out.Bounds())
}
