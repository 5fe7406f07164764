package model

import (
	"image"

	"github.com/soocke/wallpreview-go/domain/placement"
)

// SurfaceModel holds the on-screen rectangle of the live surface. A zero
// rectangle means the surface is not mounted.
// No synchronization needed: updates occur on the UI thread tick.
type SurfaceModel struct {
	rect image.Rectangle
}

func NewSurfaceModel() *SurfaceModel { return &SurfaceModel{} }

// SetRect records the mounted rectangle. Empty rectangles clear it.
func (m *SurfaceModel) SetRect(r image.Rectangle) {
	if m == nil {
		return
	}
	if r.Empty() {
		m.rect = image.Rectangle{}
		return
	}
	m.rect = r
}

// Clear marks the surface as unmounted.
func (m *SurfaceModel) Clear() { m.SetRect(image.Rectangle{}) }

// Rect returns the mounted rectangle (may be empty).
func (m *SurfaceModel) Rect() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.rect
}

// Mounted reports whether a non-empty rectangle is recorded.
func (m *SurfaceModel) Mounted() bool { return !m.Rect().Empty() }

// Placement converts the rectangle for the placement controller.
func (m *SurfaceModel) Placement() placement.Rect {
	r := m.Rect()
	return placement.Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
	}
}
