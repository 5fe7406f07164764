//go:build !linux

package capture

// ProbeVideoDevice is a no-op outside linux; the backend reports failures itself.
func ProbeVideoDevice(index int) error { return nil }
