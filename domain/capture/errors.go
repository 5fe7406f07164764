package capture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies capture failures.
type Kind int

const (
	DeviceError Kind = iota
	Unsupported
	PermissionDenied
	Timeout
)

func (k Kind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case PermissionDenied:
		return "permission denied"
	case Timeout:
		return "timeout"
	default:
		return "device error"
	}
}

var (
	// ErrAbandoned is reported by an acquisition that resolved after the
	// caller lost interest. Its stream has already been released.
	ErrAbandoned = errors.New("capture: acquisition abandoned")
	// ErrClosed is returned by a closed manager.
	ErrClosed = errors.New("capture: manager closed")
)

// CaptureError is the classified form of a capture failure.
type CaptureError struct {
	Kind Kind
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return "capture: " + e.Kind.String()
	}
	return fmt.Sprintf("capture: %s: %v", e.Kind, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Classify maps err onto a CaptureError. It returns nil for nil and passes an
// existing CaptureError through unchanged.
func Classify(err error) *CaptureError {
	if err == nil {
		return nil
	}
	var ce *CaptureError
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		return &CaptureError{Kind: Unsupported, Err: err}
	case errors.Is(err, fs.ErrPermission):
		// syscall.Errno reports EACCES and EPERM as fs.ErrPermission.
		return &CaptureError{Kind: PermissionDenied, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &CaptureError{Kind: Timeout, Err: err}
	default:
		return &CaptureError{Kind: DeviceError, Err: err}
	}
}

// KindOf returns the kind of err, or DeviceError when err is not a capture failure.
func KindOf(err error) Kind {
	if ce := Classify(err); ce != nil {
		return ce.Kind
	}
	return DeviceError
}
