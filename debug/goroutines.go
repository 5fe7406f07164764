package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and capture counters at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/soocke/wallpreview-go/domain/capture"
)

// StatsFunc returns the current capture counters.
type StatsFunc func() capture.ManagerStats

// StartRuntimeLogger launches a ticker that logs goroutine count, stack memory
// and capture stats until ctx is done. stats may be nil.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, stats StatsFunc) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			attrs := RuntimeAttrs(samples[0].Value.Uint64())
			if stats != nil {
				attrs = append(attrs, CaptureAttrs(stats())...)
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "runtime", attrs...)
		}
	}()
}

// RuntimeAttrs reports goroutine and stack figures.
func RuntimeAttrs(goroutines uint64) []slog.Attr {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return []slog.Attr{
		slog.Uint64("goroutines", goroutines),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("stack_sys", ms.StackSys),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
	}
}

// CaptureAttrs flattens capture counters into log attributes.
func CaptureAttrs(st capture.ManagerStats) []slog.Attr {
	attrs := []slog.Attr{
		slog.Uint64("capture.acquisitions", st.Acquisitions),
		slog.Uint64("capture.joins", st.Joins),
		slog.Uint64("capture.releases", st.Releases),
		slog.Uint64("capture.failures", st.Failures),
		slog.Uint64("capture.abandoned", st.Abandoned),
		slog.Bool("capture.held", st.Held),
		slog.Bool("capture.ready", st.Ready),
	}
	if st.Pump != nil {
		attrs = append(attrs,
			slog.Uint64("capture.frames", st.Pump.Captures),
			slog.Uint64("capture.skipped", st.Pump.Skipped),
			slog.Duration("capture.avg", st.Pump.AvgCapture),
			slog.Duration("capture.frame_age", st.Pump.LatestFrameAge),
		)
	}
	return attrs
}
