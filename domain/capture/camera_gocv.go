//go:build gocv

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"time"

	"gocv.io/x/gocv"
)

// CameraDevice opens a webcam through OpenCV. The environment-facing camera
// is Index; the user-facing camera is assumed to be the next device.
type CameraDevice struct {
	logger *slog.Logger
	Index  int
}

// NewCameraDevice returns a webcam device rooted at index.
func NewCameraDevice(logger *slog.Logger, index int) *CameraDevice {
	return &CameraDevice{logger: logger, Index: index}
}

func (d *CameraDevice) deviceIndex(f Facing) int {
	if f == FacingUser {
		return d.Index + 1
	}
	return d.Index
}

func (d *CameraDevice) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := d.deviceIndex(c.Facing)
	if err := ProbeVideoDevice(idx); err != nil {
		return nil, err
	}
	webcam, err := gocv.OpenVideoCapture(idx)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", idx, err)
	}
	if !webcam.IsOpened() {
		webcam.Close()
		return nil, fmt.Errorf("camera %d did not open", idx)
	}
	if c.IdealWidth > 0 && c.IdealHeight > 0 {
		webcam.Set(gocv.VideoCaptureFrameWidth, float64(c.IdealWidth))
		webcam.Set(gocv.VideoCaptureFrameHeight, float64(c.IdealHeight))
	}
	mat := gocv.NewMat()
	grab := func() (*image.RGBA, error) {
		if ok := webcam.Read(&mat); !ok {
			return nil, errors.New("camera read failed")
		}
		if mat.Empty() {
			return nil, nil
		}
		img, err := mat.ToImage()
		if err != nil {
			return nil, err
		}
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba, nil
		}
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		return rgba, nil
	}
	closer := func() {
		mat.Close()
		webcam.Close()
	}
	s := newPumpStream(d.logger, fmt.Sprintf("camera%d", idx), grab, 5*time.Millisecond, closer)
	s.start()
	return s, nil
}
