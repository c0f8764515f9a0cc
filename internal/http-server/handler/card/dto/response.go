package dto

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ImageInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type TransformResponse struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Angle  float64 `json:"angle"`
	ScaleX float64 `json:"scale_x"`
	ScaleY float64 `json:"scale_y"`
}

type ViewportResponse struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

type ReadoutResponse struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

type CanvasResponse struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	HasImage  bool              `json:"has_image"`
	Image     *ImageInfo        `json:"image,omitempty"`
	Transform TransformResponse `json:"transform"`
	Viewport  ViewportResponse  `json:"viewport"`
	Readout   *ReadoutResponse  `json:"readout"`
}

type PresentationResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type EntryResponse struct {
	ID        string               `json:"id"`
	Position  int                  `json:"position"`
	Source    string               `json:"source"`
	Image     ImageInfo            `json:"image"`
	Thumbnail PresentationResponse `json:"thumbnail"`
	URL       string               `json:"url"`
	CreatedAt time.Time            `json:"created_at"`
}

type BinderResponse struct {
	Entries []EntryResponse `json:"entries"`
}

type UploadFailure struct {
	Name    string `json:"name"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type UploadResponse struct {
	Entries  []EntryResponse `json:"entries"`
	Failures []UploadFailure `json:"failures"`
}

type NoticeResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type NoticesResponse struct {
	Notices []NoticeResponse `json:"notices"`
}
