package domain

import "fmt"

type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatGIF  ImageFormat = "gif"
	FormatWebP ImageFormat = "webp"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

func (f ImageFormat) MimeType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// RasterImage is an encoded bitmap with its pixel size. It is never mutated
// after construction; a new image supersedes an old one.
type RasterImage struct {
	data   []byte
	format ImageFormat
	width  int
	height int
}

func NewRasterImage(data []byte, format ImageFormat, width, height int) (*RasterImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUndecodableImage)
	}

	payload := make([]byte, len(data))
	copy(payload, data)

	return &RasterImage{
		data:   payload,
		format: format,
		width:  width,
		height: height,
	}, nil
}

// Data returns a copy of the encoded payload.
func (r *RasterImage) Data() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

func (r *RasterImage) Size() int64 {
	return int64(len(r.data))
}

func (r *RasterImage) Format() ImageFormat {
	return r.format
}

func (r *RasterImage) MimeType() string {
	return r.format.MimeType()
}

func (r *RasterImage) Width() int {
	return r.width
}

func (r *RasterImage) Height() int {
	return r.height
}
