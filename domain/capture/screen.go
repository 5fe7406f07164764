package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/vova616/screenshot"
)

// ScreenDevice mirrors the desktop as the video source. The captured region
// is centred on the primary screen and sized to the ideal constraints.
type ScreenDevice struct {
	logger   *slog.Logger
	interval time.Duration
	// overridable in tests
	screenRect  func() (image.Rectangle, error)
	captureRect func(image.Rectangle) (*image.RGBA, error)
}

// NewScreenDevice returns a screen-mirroring device.
func NewScreenDevice(logger *slog.Logger) *ScreenDevice {
	return &ScreenDevice{
		logger:      logger,
		interval:    30 * time.Millisecond,
		screenRect:  screenshot.ScreenRect,
		captureRect: screenshot.CaptureRect,
	}
}

func (d *ScreenDevice) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	screen, err := d.screenRect()
	if err != nil {
		return nil, fmt.Errorf("screen rect: %w", err)
	}
	region := viewfinder(screen, c.IdealWidth, c.IdealHeight)
	if region.Empty() {
		return nil, fmt.Errorf("screen region empty: %v", screen)
	}
	s := newPumpStream(d.logger, "screen", func() (*image.RGBA, error) {
		return d.captureRect(region)
	}, d.interval, nil)
	s.start()
	return s, nil
}

// viewfinder returns a w x h rectangle centred in screen, clipped to it.
// Non-positive sizes select the whole screen.
func viewfinder(screen image.Rectangle, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return screen
	}
	if w > screen.Dx() {
		w = screen.Dx()
	}
	if h > screen.Dy() {
		h = screen.Dy()
	}
	x0 := screen.Min.X + (screen.Dx()-w)/2
	y0 := screen.Min.Y + (screen.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
