//go:build linux

package capture

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ProbeVideoDevice checks that /dev/video<index> exists and is readable and
// writable by this process.
func ProbeVideoDevice(index int) error {
	path := fmt.Sprintf("/dev/video%d", index)
	err := unix.Access(path, unix.R_OK|unix.W_OK)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENODEV):
		return fmt.Errorf("%s: %w", path, errors.ErrUnsupported)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%s: %w", path, os.ErrPermission)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
