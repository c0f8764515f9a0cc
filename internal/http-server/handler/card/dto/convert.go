package dto

import (
	"card-binder/internal/domain"
	"card-binder/internal/usecase/canvas"
)

func NewImageInfo(r *domain.RasterImage) ImageInfo {
	return ImageInfo{
		Width:    r.Width(),
		Height:   r.Height(),
		Format:   string(r.Format()),
		MimeType: r.MimeType(),
		Size:     r.Size(),
	}
}

func NewCanvasResponse(s canvas.Snapshot) CanvasResponse {
	resp := CanvasResponse{
		Width:    domain.CanvasWidth,
		Height:   domain.CanvasHeight,
		HasImage: s.HasImage,
		Transform: TransformResponse{
			Left:   s.Transform.Left,
			Top:    s.Transform.Top,
			Angle:  s.Transform.Angle,
			ScaleX: s.Transform.ScaleX,
			ScaleY: s.Transform.ScaleY,
		},
		Viewport: ViewportResponse{
			Zoom: s.Viewport.Zoom,
			PanX: s.Viewport.PanX,
			PanY: s.Viewport.PanY,
		},
	}

	if s.Raster != nil {
		info := NewImageInfo(s.Raster)
		resp.Image = &info
	}
	if s.Readout != nil {
		resp.Readout = &ReadoutResponse{
			Width:  s.Readout.Width,
			Height: s.Readout.Height,
			Label:  s.Readout.Label(),
		}
	}

	return resp
}

func NewEntryResponse(e *domain.BinderEntry, position int) EntryResponse {
	return EntryResponse{
		ID:       string(e.ID),
		Position: position,
		Source:   string(e.Source),
		Image:    NewImageInfo(e.Raster),
		Thumbnail: PresentationResponse{
			Width:  e.Presentation.Width,
			Height: e.Presentation.Height,
		},
		URL:       "/api/binder/" + string(e.ID),
		CreatedAt: e.CreatedAt,
	}
}

func NewEntryResponses(entries []*domain.BinderEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = NewEntryResponse(e, i)
	}
	return out
}

func NewNoticeResponse(n domain.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Operation: n.Operation,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
