package capture

import (
	"fmt"
	"log/slog"
	"strings"
)

// Backend names accepted by NewDevice.
const (
	BackendScreen = "screen"
	BackendCamera = "camera"
)

// NewDevice selects a capture backend by name.
func NewDevice(name string, logger *slog.Logger, cameraIndex int) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendScreen:
		return NewScreenDevice(logger), nil
	case BackendCamera:
		return NewCameraDevice(logger, cameraIndex), nil
	default:
		return nil, fmt.Errorf("unknown capture backend %q", name)
	}
}
