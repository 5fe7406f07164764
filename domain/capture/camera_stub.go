//go:build !gocv

package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// CameraDevice is unavailable without the gocv build tag. It still probes the
// device node so a permission problem is reported as such.
type CameraDevice struct {
	logger *slog.Logger
	Index  int
}

// NewCameraDevice returns the stub camera device.
func NewCameraDevice(logger *slog.Logger, index int) *CameraDevice {
	return &CameraDevice{logger: logger, Index: index}
}

func (d *CameraDevice) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	if err := ProbeVideoDevice(d.Index); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("camera backend requires the gocv build tag: %w", errors.ErrUnsupported)
}
