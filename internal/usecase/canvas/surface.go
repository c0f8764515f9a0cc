package canvas

import (
	"fmt"
	"image"
	"math"
	"sync"

	"card-binder/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// SizeReadout is the effective on-screen size of the placed image.
type SizeReadout struct {
	Width  int
	Height int
}

func (s SizeReadout) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s SizeReadout) Label() string {
	return "Image size: " + s.String()
}

// Snapshot is a consistent copy of the surface state.
type Snapshot struct {
	HasImage  bool
	Raster    *domain.RasterImage
	Transform domain.Transform
	Viewport  domain.Viewport
	Readout   *SizeReadout
}

type placed struct {
	img    image.Image
	raster *domain.RasterImage
}

// Surface is the editing canvas. It holds at most one image; placing a new
// one replaces the previous.
type Surface struct {
	mu        sync.RWMutex
	current   *placed
	transform domain.Transform
	viewport  domain.Viewport
	renderer  renderer
	logger    *zlog.Zerolog
}

func NewSurface(renderer renderer, logger *zlog.Zerolog) *Surface {
	return &Surface{
		transform: domain.IdentityTransform(),
		viewport:  domain.DefaultViewport(),
		renderer:  renderer,
		logger:    logger,
	}
}

func (s *Surface) Place(raster *domain.RasterImage, img image.Image) error {
	if raster == nil || img == nil {
		return fmt.Errorf("%w: nothing to place", domain.ErrInvalidDimensions)
	}

	s.mu.Lock()
	replaced := s.current != nil
	s.current = &placed{img: img, raster: raster}
	s.transform = domain.IdentityTransform()
	s.mu.Unlock()

	s.logger.Info().
		Int("width", raster.Width()).
		Int("height", raster.Height()).
		Bool("replaced", replaced).
		Msg("Image placed on canvas")

	return nil
}

func (s *Surface) CurrentTransform() domain.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

// SetTransform records the geometry reported by the object manipulation
// handles (drag-move, resize, rotate).
func (s *Surface) SetTransform(t domain.Transform) error {
	if t.ScaleX == 0 || t.ScaleY == 0 || !finite(t.Left, t.Top, t.Angle, t.ScaleX, t.ScaleY) {
		return fmt.Errorf("%w: transform %+v", domain.ErrInvalidDimensions, t)
	}

	s.mu.Lock()
	s.transform = t
	s.mu.Unlock()
	return nil
}

// ZoomBy applies a wheel delta: zoom *= 0.999^deltaY, clamped, around point.
func (s *Surface) ZoomBy(deltaY float64, point domain.Point) Snapshot {
	s.mu.Lock()
	zoom := s.viewport.Zoom * math.Pow(domain.WheelZoomBase, deltaY)
	s.zoomToPoint(zoom, point)
	snap := s.snapshot()
	s.mu.Unlock()

	s.logZoom(deltaY, snap)
	return snap
}

// ZoomTo sets the zoom factor, clamped, keeping point fixed on screen.
func (s *Surface) ZoomTo(zoom float64, point domain.Point) Snapshot {
	s.mu.Lock()
	s.zoomToPoint(zoom, point)
	snap := s.snapshot()
	s.mu.Unlock()

	s.logZoom(0, snap)
	return snap
}

func (s *Surface) zoomToPoint(zoom float64, point domain.Point) {
	zoom = domain.ClampZoom(zoom)
	if !finite(point.X, point.Y) {
		point = domain.Point{}
	}

	old := s.viewport
	// canvas coordinate under the pointer stays under the pointer
	cx := (point.X - old.PanX) / old.Zoom
	cy := (point.Y - old.PanY) / old.Zoom

	s.viewport = domain.Viewport{
		Zoom: zoom,
		PanX: point.X - cx*zoom,
		PanY: point.Y - cy*zoom,
	}
}

func (s *Surface) logZoom(deltaY float64, snap Snapshot) {
	event := s.logger.Debug().
		Float64("delta_y", deltaY).
		Float64("zoom", snap.Viewport.Zoom)
	if snap.Readout != nil {
		event = event.Str("size", snap.Readout.String())
	}
	event.Msg("Canvas zoomed")
}

func (s *Surface) readout() *SizeReadout {
	if s.current == nil {
		return nil
	}

	zoom := s.viewport.Zoom
	scaledWidth := float64(s.current.raster.Width()) * math.Abs(s.transform.ScaleX)
	scaledHeight := float64(s.current.raster.Height()) * math.Abs(s.transform.ScaleY)

	return &SizeReadout{
		Width:  int(math.Round(scaledWidth * zoom)),
		Height: int(math.Round(scaledHeight * zoom)),
	}
}

func (s *Surface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Surface) snapshot() Snapshot {
	snap := Snapshot{
		HasImage:  s.current != nil,
		Transform: s.transform,
		Viewport:  s.viewport,
		Readout:   s.readout(),
	}
	if s.current != nil {
		snap.Raster = s.current.raster
	}
	return snap
}

// Rasterize renders the whole surface as it is currently shown.
func (s *Surface) Rasterize() (image.Image, error) {
	s.mu.RLock()
	var img image.Image
	if s.current != nil {
		img = s.current.img
	}
	t, vp := s.transform, s.viewport
	s.mu.RUnlock()

	return s.renderer.Render(img, t, vp)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
