package capture

import (
	"context"
	"image"
	"strings"
	"time"
)

// Facing selects which camera a device should open.
type Facing int

const (
	FacingEnvironment Facing = iota
	FacingUser
)

func (f Facing) String() string {
	if f == FacingUser {
		return "user"
	}
	return "environment"
}

// ParseFacing maps "user" (or "front") to FacingUser and anything else to
// FacingEnvironment.
func ParseFacing(s string) Facing {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "front":
		return FacingUser
	default:
		return FacingEnvironment
	}
}

// Constraints are the preferences passed to a device. Width and height are
// ideals; backends may deliver a different size.
type Constraints struct {
	Facing      Facing
	IdealWidth  int
	IdealHeight int
}

// DefaultConstraints requests the rear camera at 1280x720.
func DefaultConstraints() Constraints {
	return Constraints{Facing: FacingEnvironment, IdealWidth: 1280, IdealHeight: 720}
}

// FrameSnapshot carries the latest captured frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Track is one media track of a stream. Stop must be safe to call more than once.
type Track interface {
	Kind() string
	Label() string
	Stop()
}

// Stream is an acquired media stream. Ready is closed once the first frame
// has been decoded.
type Stream interface {
	Tracks() []Track
	Ready() <-chan struct{}
	LatestFrame() FrameSnapshot
}

// Device acquires streams. A device may return a non-nil stream together with
// an error when acquisition failed half way; the manager releases it.
type Device interface {
	Acquire(ctx context.Context, c Constraints) (Stream, error)
}

// DeviceFunc adapts a function to Device.
type DeviceFunc func(ctx context.Context, c Constraints) (Stream, error)

func (f DeviceFunc) Acquire(ctx context.Context, c Constraints) (Stream, error) { return f(ctx, c) }
