package dto

type PasteRequest struct {
	DataURL string `json:"data_url" validate:"required,startswith=data:"`
}

type TransformRequest struct {
	Left   float64  `json:"left"`
	Top    float64  `json:"top"`
	Angle  float64  `json:"angle"`
	ScaleX *float64 `json:"scale_x" validate:"required"`
	ScaleY *float64 `json:"scale_y" validate:"required"`
}

// ZoomRequest carries either a wheel delta or an absolute zoom factor,
// applied around the pointer at (X, Y).
type ZoomRequest struct {
	DeltaY *float64 `json:"delta_y" validate:"required_without=Zoom,excluded_with=Zoom"`
	Zoom   *float64 `json:"zoom" validate:"required_without=DeltaY,excluded_with=DeltaY"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
}

type DownloadRequest struct {
	Name string `json:"name" validate:"omitempty,max=128,excludesall=/\\"`
	Tags string `json:"tags" validate:"omitempty,max=128,excludesall=/\\"`
}

type ReorderRequest struct {
	// IDs is checked against the binder by the workspace, blank and missing
	// ids included.
	IDs []string `json:"ids"`
}
