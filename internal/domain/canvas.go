package domain

import "math"

const (
	CanvasWidth  = 750
	CanvasHeight = 1050
)

const (
	MinZoom       = 0.01
	MaxZoom       = 20.0
	WheelZoomBase = 0.999
)

type Point struct {
	X float64
	Y float64
}

// Transform is the placed object's geometry in canvas units. Angle is in
// degrees, rotation happens around (Left, Top).
type Transform struct {
	Left   float64
	Top    float64
	Angle  float64
	ScaleX float64
	ScaleY float64
}

func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) {
		return MinZoom
	}
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
