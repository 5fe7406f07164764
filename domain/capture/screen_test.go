package capture

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestViewfinder(t *testing.T) {
	screen := image.Rect(0, 0, 1920, 1080)
	if got := viewfinder(screen, 1280, 720); got != image.Rect(320, 180, 1600, 900) {
		t.Fatalf("unexpected centred region %v", got)
	}
	if got := viewfinder(screen, 4000, 200); got != image.Rect(0, 440, 1920, 640) {
		t.Fatalf("oversized width should clip, got %v", got)
	}
	if got := viewfinder(screen, 0, 0); got != screen {
		t.Fatalf("zero size should select the screen, got %v", got)
	}
}

func TestScreenDevice_StreamBecomesReady(t *testing.T) {
	var (
		mu    sync.Mutex
		asked image.Rectangle
	)
	d := &ScreenDevice{
		logger:     discardLogger,
		screenRect: func() (image.Rectangle, error) { return image.Rect(0, 0, 200, 100), nil },
		captureRect: func(r image.Rectangle) (*image.RGBA, error) {
			mu.Lock()
			asked = r
			mu.Unlock()
			return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
		},
	}
	s, err := d.Acquire(context.Background(), Constraints{IdealWidth: 100, IdealHeight: 50})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatalf("stream never became ready")
	}
	mu.Lock()
	region := asked
	mu.Unlock()
	if region != image.Rect(50, 25, 150, 75) {
		t.Fatalf("unexpected capture region %v", region)
	}
	frame := s.LatestFrame()
	if frame.Image == nil || frame.Sequence == 0 {
		t.Fatalf("expected a frame, got %+v", frame)
	}
	for _, tr := range s.Tracks() {
		tr.Stop()
		tr.Stop()
	}
	if s.(*pumpStream).Running() {
		t.Fatalf("stopping the track should stop the pump")
	}
}

func TestScreenDevice_ScreenRectError(t *testing.T) {
	d := &ScreenDevice{
		screenRect: func() (image.Rectangle, error) { return image.Rectangle{}, errors.New("no display") },
	}
	if _, err := d.Acquire(context.Background(), DefaultConstraints()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPumpStream_SkipsEmptyFramesAndRunsCloser(t *testing.T) {
	calls := 0
	closed := make(chan struct{})
	s := newPumpStream(nil, "test", func() (*image.RGBA, error) {
		calls++
		if calls < 3 {
			return nil, nil
		}
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}, 0, func() { close(closed) })
	s.start()
	<-s.Ready()
	s.Tracks()[0].Stop()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatalf("closer not run")
	}
	if st := s.Stats(); st.Skipped < 2 || st.Captures < 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestNewDevice(t *testing.T) {
	if d, err := NewDevice("screen", nil, 0); err != nil || d == nil {
		t.Fatalf("screen backend: %v", err)
	}
	if _, ok := mustDevice(t, "camera").(*CameraDevice); !ok {
		t.Fatalf("camera backend should be a CameraDevice")
	}
	if _, err := NewDevice("holo", nil, 0); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}

func mustDevice(t *testing.T, name string) Device {
	t.Helper()
	d, err := NewDevice(name, nil, 0)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return d
}

// errorCounter counts Error records.
type errorCounter struct{ n atomic.Int32 }

func (h *errorCounter) Enabled(context.Context, slog.Level) bool { return true }
func (h *errorCounter) Handle(_ context.Context, r slog.Record) error {
	if r.Level == slog.LevelError {
		h.n.Add(1)
	}
	return nil
}
func (h *errorCounter) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *errorCounter) WithGroup(string) slog.Handler      { return h }

func TestPumpStream_PersistentGrabErrorLogsOnce(t *testing.T) {
	h := &errorCounter{}
	var grabs atomic.Int32
	s := newPumpStream(slog.New(h), "test", func() (*image.RGBA, error) {
		grabs.Add(1)
		return nil, errors.New("device unplugged")
	}, 0, nil)
	s.start()
	waitFor(t, func() bool { return grabs.Load() >= 5 }, time.Second)
	s.Tracks()[0].Stop()
	if n := h.n.Load(); n != 1 {
		t.Fatalf("expected one error log for the streak, got %d", n)
	}
	if st := s.Stats(); st.Skipped < 5 {
		t.Fatalf("failed grabs should count as skipped, got %+v", st)
	}
}

func TestGrabThrottle(t *testing.T) {
	g := grabThrottle{every: time.Second}
	now := time.Unix(100, 0)
	if !g.fail(now) {
		t.Fatalf("first failure should log")
	}
	if g.fail(now.Add(10 * time.Millisecond)) {
		t.Fatalf("repeat within the interval should not log")
	}
	if !g.fail(now.Add(time.Second)) {
		t.Fatalf("repeat after the interval should log")
	}
	for i := 0; i < 20; i++ {
		g.fail(now)
	}
	if d := g.backoff(); d != maxGrabBackoff {
		t.Fatalf("long streak should cap backoff, got %v", d)
	}
	g.reset()
	if d := g.backoff(); d != time.Millisecond {
		t.Fatalf("reset should restore the short sleep, got %v", d)
	}
	if !g.fail(now.Add(1500 * time.Millisecond)) {
		t.Fatalf("new streak should log its first failure")
	}
}
