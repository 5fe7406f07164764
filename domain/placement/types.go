package placement

import (
	"math"

	"github.com/soocke/wallpreview-go/domain/session"
)

// Rect is the bounding rectangle of the viewing surface in device coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Valid reports whether r has a positive, finite size.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0 && !math.IsInf(r.Width, 0) && !math.IsInf(r.Height, 0)
}

// Point is a raw device coordinate.
type Point struct{ X, Y float64 }

// EventKind distinguishes pointer event sources.
type EventKind int

const (
	// EventMouse is a click or single pointer tap.
	EventMouse EventKind = iota
	EventTouchStart
	EventTouchMove
	EventTouchEnd
)

func (k EventKind) String() string {
	switch k {
	case EventTouchStart:
		return "touchstart"
	case EventTouchMove:
		return "touchmove"
	case EventTouchEnd:
		return "touchend"
	default:
		return "mouse"
	}
}

// PointerEvent is a raw input event from the rendering surface. Touches is the
// active touch list; ChangedTouches lists the touches that changed in this event.
type PointerEvent struct {
	Kind           EventKind
	X, Y           float64
	Touches        []Point
	ChangedTouches []Point
}

// Tap returns a mouse event at (x, y).
func Tap(x, y float64) PointerEvent { return PointerEvent{Kind: EventMouse, X: x, Y: y} }

// places reports whether the event kind may set the anchor. Touch start and
// move only feed the last known touch position.
func (ev PointerEvent) places() bool { return ev.Kind == EventMouse || ev.Kind == EventTouchEnd }

// Anchor is the normalized overlay position, both axes in [0,100]. The
// coordinates are meaningless while Placed is false.
type Anchor struct {
	X, Y   float64
	Placed bool
}

// PhaseSource reports the current session phase.
type PhaseSource interface {
	Current() session.Phase
}

// PhaseFunc adapts a function to PhaseSource.
type PhaseFunc func() session.Phase

func (f PhaseFunc) Current() session.Phase { return f() }
