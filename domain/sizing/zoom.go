package sizing

import (
	"fmt"
	"math"
)

// Zoom bounds in tenths. Zoom is kept as an integer number of tenths so
// repeated +/-0.1 steps land exactly on the 0.1 grid.
const (
	minZoomTenths     = 5
	maxZoomTenths     = 20
	defaultZoomTenths = 10

	MinZoom     = 0.5
	MaxZoom     = 2.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// Zoom is a scale factor in [MinZoom, MaxZoom] on the ZoomStep grid.
// The zero value reads as DefaultZoom.
type Zoom struct{ tenths int }

// DefaultZoomFactor returns a zoom of 1.0.
func DefaultZoomFactor() Zoom { return Zoom{tenths: defaultZoomTenths} }

// ZoomFromTenths returns the zoom of t tenths, clamped into range.
func ZoomFromTenths(t int) Zoom { return Zoom{tenths: clampTenths(t)} }

// Tenths returns the zoom as an integer number of tenths.
func (z Zoom) Tenths() int { return z.normalized().tenths }

// ZoomOf returns the zoom nearest to v, clamped into range. NaN maps to the default.
func ZoomOf(v float64) Zoom {
	if math.IsNaN(v) {
		return DefaultZoomFactor()
	}
	if math.IsInf(v, 1) {
		return Zoom{tenths: maxZoomTenths}
	}
	if math.IsInf(v, -1) {
		return Zoom{tenths: minZoomTenths}
	}
	return Zoom{tenths: clampTenths(int(math.Round(v * 10)))}
}

// Add returns the zoom moved by delta, snapped to the 0.1 grid and clamped.
func (z Zoom) Add(delta float64) Zoom {
	base := z.normalized().tenths
	if math.IsNaN(delta) {
		return Zoom{tenths: base}
	}
	if math.IsInf(delta, 0) || math.Abs(delta) > 100 {
		if delta > 0 {
			return Zoom{tenths: maxZoomTenths}
		}
		return Zoom{tenths: minZoomTenths}
	}
	return Zoom{tenths: clampTenths(base + int(math.Round(delta*10)))}
}

// Value returns the zoom as a float.
func (z Zoom) Value() float64 { return float64(z.normalized().tenths) / 10 }

// Percent returns the zoom as a whole percentage, e.g. 120 for 1.2.
func (z Zoom) Percent() int { return z.normalized().tenths * 10 }

func (z Zoom) normalized() Zoom {
	if z.tenths == 0 {
		return DefaultZoomFactor()
	}
	return Zoom{tenths: clampTenths(z.tenths)}
}

// ClampZoom clamps v into [MinZoom, MaxZoom]. NaN maps to DefaultZoom.
// Unlike ZoomOf it does not snap to the step grid.
func ClampZoom(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return DefaultZoom
	case v < MinZoom:
		return MinZoom
	case v > MaxZoom:
		return MaxZoom
	default:
		return v
	}
}

func clampTenths(t int) int {
	if t < minZoomTenths {
		return minZoomTenths
	}
	if t > maxZoomTenths {
		return maxZoomTenths
	}
	return t
}

// InvalidZoomRange is the InputError code for a zoom outside [MinZoom, MaxZoom].
const InvalidZoomRange = "invalid_zoom_range"

// InputError reports a rejected input value. Callers recover by clamping.
type InputError struct {
	Code  string
	Value float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Value)
}

// CheckZoom returns an *InputError when v lies outside [MinZoom, MaxZoom] or is NaN.
func CheckZoom(v float64) error {
	if math.IsNaN(v) || v < MinZoom-1e-9 || v > MaxZoom+1e-9 {
		return &InputError{Code: InvalidZoomRange, Value: v}
	}
	return nil
}
