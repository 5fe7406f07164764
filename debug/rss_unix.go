//go:build linux || darwin || freebsd

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// peakRSS returns the maximum resident set size in bytes.
func peakRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" { // kilobytes except on darwin
		rss *= 1024
	}
	return rss, nil
}
