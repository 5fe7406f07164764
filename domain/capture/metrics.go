package capture

import "time"

// PumpStats summarises frame pump behaviour for instrumentation.
type PumpStats struct {
	Captures         uint64
	Skipped          uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}

// ManagerStats summarises the manager's lifecycle counters.
type ManagerStats struct {
	Acquisitions uint64
	Joins        uint64
	Releases     uint64
	Failures     uint64
	Abandoned    uint64
	Held         bool
	Ready        bool
	// Pump is set when the held stream exposes pump stats.
	Pump *PumpStats
}
