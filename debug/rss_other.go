//go:build !linux && !darwin && !freebsd

package debug

import "errors"

func peakRSS() (uint64, error) { return 0, errors.ErrUnsupported }
