package domain

import (
	"fmt"
	"time"
)

type EntryID string

type EntrySource string

const (
	SourceExport EntrySource = "export"
	SourceUpload EntrySource = "upload"
)

type Presentation struct {
	Width  int
	Height int
}

type BinderEntry struct {
	ID           EntryID
	Raster       *RasterImage
	Presentation Presentation
	Source       EntrySource
	CreatedAt    time.Time
}

const (
	ThumbnailWidth  = 250
	ThumbnailHeight = 350
	CollageHeight   = 361
)

const (
	ViewerWidth  = 500
	ViewerHeight = 700
)

// ViewerFeatures is the window feature string for the full-size viewer.
var ViewerFeatures = fmt.Sprintf(
	"toolbar=no,location=no,directories=no,status=no,menubar=no,scrollbars=yes,resizable=yes,width=%d,height=%d",
	ViewerWidth, ViewerHeight,
)

func ThumbnailPresentation() Presentation {
	return Presentation{Width: ThumbnailWidth, Height: ThumbnailHeight}
}
