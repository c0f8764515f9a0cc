package processor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"card-binder/internal/domain"
	"card-binder/internal/usecase/processor/operations"

	"github.com/gabriel-vasile/mimetype"
	"github.com/wb-go/wbf/zlog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type ImageProcessor struct {
	rounder   *operations.Rounder
	collager  *operations.Collager
	renderer  *operations.Renderer
	// maxPixels bounds width*height of a payload before it is decoded.
	maxPixels int64
	logger    *zlog.Zerolog
}

func NewImageProcessor(maxPixels int64, logger *zlog.Zerolog) *ImageProcessor {
	if maxPixels <= 0 {
		maxPixels = domain.DefaultMaxPixels
	}
	return &ImageProcessor{
		rounder:   operations.NewRounder(),
		collager:  operations.NewCollager(operations.NewThumbnailer(domain.ThumbnailPresentation()), domain.CollageHeight),
		renderer:  operations.NewRenderer(domain.CanvasWidth, domain.CanvasHeight),
		maxPixels: maxPixels,
		logger:    logger,
	}
}

// Decode turns an uploaded payload into pixels plus the raster it came from.
// The payload is stored as uploaded; it is never re-encoded.
func (p *ImageProcessor) Decode(data []byte) (image.Image, *domain.RasterImage, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty payload", domain.ErrUndecodableImage)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, nil, fmt.Errorf("%w: detected %s", domain.ErrUndecodableImage, mtype.String())
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUndecodableImage, err)
	}
	if header.Width <= 0 || header.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: declared size %dx%d", domain.ErrUndecodableImage, header.Width, header.Height)
	}
	if int64(header.Width)*int64(header.Height) > p.maxPixels {
		return nil, nil, fmt.Errorf("%w: declared size %dx%d exceeds %d pixels",
			domain.ErrUndecodableImage, header.Width, header.Height, p.maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUndecodableImage, err)
	}

	bounds := img.Bounds()
	raster, err := domain.NewRasterImage(data, domain.ImageFormat(format), bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, nil, err
	}

	p.logger.Debug().
		Str("format", format).
		Str("mime", mtype.String()).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("Image decoded")

	return img, raster, nil
}

// Export clips img to rounded corners of the given radius and encodes it as PNG.
func (p *ImageProcessor) Export(img image.Image, radius float64) (*domain.RasterImage, error) {
	rounded, err := p.rounder.Process(img, radius)
	if err != nil {
		return nil, fmt.Errorf("failed to round corners: %w", err)
	}

	raster, err := encodePNG(rounded)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Int("width", raster.Width()).
		Int("height", raster.Height()).
		Float64("radius", radius).
		Int64("size", raster.Size()).
		Msg("Export rendered")

	return raster, nil
}

// Render rasterizes the editing surface without any clipping.
func (p *ImageProcessor) Render(img image.Image, t domain.Transform, vp domain.Viewport) (image.Image, error) {
	out, err := p.renderer.Process(img, t, vp)
	if err != nil {
		return nil, fmt.Errorf("failed to render surface: %w", err)
	}
	return out, nil
}

// Compose lays the rasters out as a collage strip, in the given order, before
// any clipping.
func (p *ImageProcessor) Compose(rasters []*domain.RasterImage) (image.Image, error) {
	images := make([]image.Image, 0, len(rasters))
	for i, raster := range rasters {
		img, _, err := image.Decode(bytes.NewReader(raster.Data()))
		if err != nil {
			return nil, fmt.Errorf("%w: collage item %d: %v", domain.ErrUndecodableImage, i, err)
		}
		images = append(images, img)
	}

	collage, err := p.collager.Process(images)
	if err != nil {
		return nil, fmt.Errorf("failed to compose collage: %w", err)
	}

	return collage, nil
}

func (p *ImageProcessor) EncodePNG(img image.Image) (*domain.RasterImage, error) {
	return encodePNG(img)
}

func encodePNG(img image.Image) (*domain.RasterImage, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	bounds := img.Bounds()
	return domain.NewRasterImage(buf.Bytes(), domain.FormatPNG, bounds.Dx(), bounds.Dy())
}
