package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	pumpStatsLogInterval = 5 * time.Second
	// maxGrabBackoff caps the sleep between failing grabs.
	maxGrabBackoff = 250 * time.Millisecond
)

// grabFunc returns one frame. A nil image with a nil error counts as a skipped frame.
type grabFunc func() (*image.RGBA, error)

// pumpStream is a Stream fed by a polling goroutine. The first stored frame
// closes Ready. Stopping the single video track ends the loop and then runs
// the optional closer.
type pumpStream struct {
	name     string
	grab     grabFunc
	closer   func()
	interval time.Duration
	logger   *slog.Logger

	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64

	ready     chan struct{}
	readyOnce sync.Once
	loopDone  chan struct{}
	track     *videoTrack
}

func newPumpStream(logger *slog.Logger, name string, grab grabFunc, interval time.Duration, closer func()) *pumpStream {
	s := &pumpStream{
		name:     name,
		grab:     grab,
		closer:   closer,
		interval: interval,
		logger:   logger,
		ready:    make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	s.track = &videoTrack{label: name, stop: s.stop}
	return s
}

func (s *pumpStream) start() {
	if s.running.Swap(true) {
		return
	}
	go s.loop()
}

func (s *pumpStream) stop() {
	if !s.running.Swap(false) {
		return
	}
	<-s.loopDone
	if s.closer != nil {
		s.closer()
	}
}

func (s *pumpStream) Tracks() []Track        { return []Track{s.track} }
func (s *pumpStream) Ready() <-chan struct{} { return s.ready }
func (s *pumpStream) Running() bool          { return s.running.Load() }

func (s *pumpStream) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *pumpStream) Stats() PumpStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return PumpStats{
		Captures:         captures,
		Skipped:          s.skipped.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

func (s *pumpStream) loop() {
	defer close(s.loopDone)
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Error("capture pump panic", "stream", s.name, "panic", r)
		}
	}()
	logTicker := time.NewTicker(pumpStatsLogInterval)
	defer logTicker.Stop()
	throttle := grabThrottle{every: pumpStatsLogInterval}
	for s.running.Load() {
		start := time.Now()
		img, err := s.grab()
		if err != nil {
			if throttle.fail(start) && s.logger != nil {
				s.logger.Error("capture grab", "stream", s.name, "error", err, "failures", throttle.streak)
			}
		} else {
			throttle.reset()
		}
		if img == nil {
			s.skipped.Add(1)
			time.Sleep(throttle.backoff())
			continue
		}

		elapsed := time.Since(start)
		s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
		s.captures.Add(1)
		seq := s.sequence.Add(1)
		s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
		s.readyOnce.Do(func() { close(s.ready) })

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		if s.interval > 0 {
			time.Sleep(s.interval)
		}
	}
}

func (s *pumpStream) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"stream", s.name,
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

// grabThrottle tracks consecutive grab failures. The first failure of a
// streak is logged, later ones at most once per interval.
type grabThrottle struct {
	every  time.Duration
	streak int
	logged time.Time
}

// fail records a failure at now and reports whether it should be logged.
func (g *grabThrottle) fail(now time.Time) bool {
	g.streak++
	if g.streak == 1 || now.Sub(g.logged) >= g.every {
		g.logged = now
		return true
	}
	return false
}

func (g *grabThrottle) reset() { g.streak = 0 }

// backoff doubles from 1ms per consecutive failure up to maxGrabBackoff.
func (g *grabThrottle) backoff() time.Duration {
	d := time.Millisecond
	for i := 1; i < g.streak && d < maxGrabBackoff; i++ {
		d *= 2
	}
	if d > maxGrabBackoff {
		d = maxGrabBackoff
	}
	return d
}

type videoTrack struct {
	label string
	stop  func()
	once  sync.Once
}

func (t *videoTrack) Kind() string  { return "video" }
func (t *videoTrack) Label() string { return t.label }
func (t *videoTrack) Stop()         { t.once.Do(t.stop) }
