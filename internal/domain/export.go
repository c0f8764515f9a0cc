package domain

import "time"

type ExportKind string

const (
	ExportCard    ExportKind = "card"
	ExportCollage ExportKind = "collage"
)

const (
	CardCornerRadius    = 30.0
	CollageCornerRadius = 15.0
)

type Export struct {
	Filename  string
	Kind      ExportKind
	Raster    *RasterImage
	EntryID   EntryID
	CreatedAt time.Time
}

// ExportEvent is the wire form of a finished export.
type ExportEvent struct {
	Filename  string     `json:"filename"`
	Kind      ExportKind `json:"kind"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Size      int64      `json:"size"`
	EntryID   EntryID    `json:"entry_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (e *Export) Event() ExportEvent {
	return ExportEvent{
		Filename:  e.Filename,
		Kind:      e.Kind,
		Width:     e.Raster.Width(),
		Height:    e.Raster.Height(),
		Size:      e.Raster.Size(),
		EntryID:   e.EntryID,
		CreatedAt: e.CreatedAt,
	}
}
