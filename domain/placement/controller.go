package placement

import (
	"log/slog"
	"math"
	"sync"

	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Options tunes a Controller.
type Options struct {
	// MirrorX stores anchors in mirrored camera-frame coordinates (x -> 100-x).
	MirrorX bool
	Logger  *slog.Logger
}

// Controller owns the overlay anchor, the zoom factor and the selected size.
// Anchor and zoom updates are accepted only while the phase is Live.
type Controller struct {
	mu          sync.Mutex
	phase       PhaseSource
	mirrorX     bool
	logger      *slog.Logger
	anchor      Anchor
	zoom        sizing.Zoom
	size        sizing.SizeOption
	lastChanged *Point
}

// NewController returns a controller gated by phase with size preselected.
func NewController(phase PhaseSource, size sizing.SizeOption, opts Options) *Controller {
	return &Controller{
		phase:   phase,
		mirrorX: opts.MirrorX,
		logger:  opts.Logger,
		zoom:    sizing.DefaultZoomFactor(),
		size:    size,
	}
}

func (c *Controller) live() bool {
	return c.phase != nil && c.phase.Current() == session.PhaseLive
}

// OnPointerEvent converts ev into a normalized anchor relative to surface.
// It returns false when the event was ignored.
func (c *Controller) OnPointerEvent(ev PointerEvent, surface Rect) (Anchor, bool) {
	if !c.live() {
		c.debug("pointer ignored outside live", "kind", ev.Kind.String())
		return c.Anchor(), false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.resolveLocked(ev)
	if !ok || !ev.places() {
		return c.anchor, false
	}
	if !surface.Valid() {
		c.debug("pointer ignored: empty surface", "width", surface.Width, "height", surface.Height)
		return c.anchor, false
	}
	x := clampPercent((p.X - surface.Left) / surface.Width * 100)
	y := clampPercent((p.Y - surface.Top) / surface.Height * 100)
	if c.mirrorX {
		x = 100 - x
	}
	c.anchor = Anchor{X: x, Y: y, Placed: true}
	return c.anchor, true
}

// resolveLocked picks the raw point for ev and records the last changed touch.
func (c *Controller) resolveLocked(ev PointerEvent) (Point, bool) {
	switch {
	case ev.Kind == EventTouchEnd && len(ev.ChangedTouches) > 0:
		p := ev.ChangedTouches[0]
		c.lastChanged = nil
		return p, true
	case ev.Kind == EventTouchEnd:
		// The active list is empty once the finger lifts.
		if c.lastChanged != nil {
			p := *c.lastChanged
			c.lastChanged = nil
			return p, true
		}
		if len(ev.Touches) > 0 {
			return ev.Touches[0], true
		}
		// No touch point known; X and Y are not filled in for touch events.
		return Point{}, false
	case ev.Kind == EventTouchStart || ev.Kind == EventTouchMove:
		if len(ev.ChangedTouches) > 0 {
			p := ev.ChangedTouches[0]
			c.lastChanged = &p
		} else if len(ev.Touches) > 0 {
			p := ev.Touches[0]
			c.lastChanged = &p
		}
		if c.lastChanged == nil {
			return Point{}, false
		}
		return *c.lastChanged, true
	case len(ev.Touches) > 0:
		return ev.Touches[0], true
	default:
		return Point{X: ev.X, Y: ev.Y}, true
	}
}

// Anchor returns the current anchor.
func (c *Controller) Anchor() Anchor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor
}

// Zoom returns the current zoom.
func (c *Controller) Zoom() sizing.Zoom {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// Size returns the selected size option.
func (c *Controller) Size() sizing.SizeOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// SetZoom moves the zoom by delta. Out-of-range results are clamped.
func (c *Controller) SetZoom(delta float64) (sizing.Zoom, bool) {
	if !c.live() {
		c.debug("zoom ignored outside live", "delta", delta)
		return c.Zoom(), false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := sizing.CheckZoom(c.zoom.Value() + delta); err != nil {
		c.debug("zoom clamped", "error", err)
	}
	c.zoom = c.zoom.Add(delta)
	return c.zoom, true
}

// SetZoomTo sets the zoom to v, snapped and clamped.
func (c *Controller) SetZoomTo(v float64) (sizing.Zoom, bool) {
	if !c.live() {
		c.debug("zoom ignored outside live", "value", v)
		return c.Zoom(), false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := sizing.CheckZoom(v); err != nil {
		c.debug("zoom clamped", "error", err)
	}
	c.zoom = sizing.ZoomOf(v)
	return c.zoom, true
}

// SelectSize switches the active size. Placement does not carry over.
func (c *Controller) SelectSize(opt sizing.SizeOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = opt
	c.anchor.Placed = false
	c.lastChanged = nil
}

// ResetForLive clears placement and restores the default zoom.
func (c *Controller) ResetForLive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = Anchor{}
	c.zoom = sizing.DefaultZoomFactor()
	c.lastChanged = nil
}

// SetMirrorX changes the mirroring used for subsequent anchors.
func (c *Controller) SetMirrorX(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mirrorX = on
}

// MirrorX reports whether anchors are stored mirrored.
func (c *Controller) MirrorX() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirrorX
}

func (c *Controller) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 50
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
