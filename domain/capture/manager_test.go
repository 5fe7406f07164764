package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeTrack struct{ stops atomic.Int32 }

func (t *fakeTrack) Kind() string  { return "video" }
func (t *fakeTrack) Label() string { return "fake" }
func (t *fakeTrack) Stop()         { t.stops.Add(1) }

type fakeStream struct {
	track *fakeTrack
	ready chan struct{}
}

func newFakeStream() *fakeStream {
	return &fakeStream{track: &fakeTrack{}, ready: make(chan struct{})}
}

func (s *fakeStream) Tracks() []Track            { return []Track{s.track} }
func (s *fakeStream) Ready() <-chan struct{}     { return s.ready }
func (s *fakeStream) LatestFrame() FrameSnapshot { return FrameSnapshot{} }
func (s *fakeStream) markReady()                 { close(s.ready) }

// gatedDevice blocks each Acquire until release is called, then hands out the
// next configured stream and error.
type gatedDevice struct {
	mu      sync.Mutex
	calls   int
	gate    chan struct{}
	streams []*fakeStream
	err     error
	started chan struct{}
}

func newGatedDevice() *gatedDevice {
	return &gatedDevice{gate: make(chan struct{}), started: make(chan struct{}, 8)}
}

func (d *gatedDevice) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	d.mu.Lock()
	d.calls++
	s := newFakeStream()
	d.streams = append(d.streams, s)
	err := d.err
	d.mu.Unlock()
	d.started <- struct{}{}
	<-d.gate
	if err != nil {
		return s, err
	}
	return s, nil
}

func (d *gatedDevice) open() { close(d.gate) }

func (d *gatedDevice) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *gatedDevice) stream(i int) *fakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streams[i]
}

func instantDevice(streams ...*fakeStream) Device {
	var i atomic.Int32
	return DeviceFunc(func(ctx context.Context, c Constraints) (Stream, error) {
		n := int(i.Add(1)) - 1
		if n < len(streams) {
			return streams[n], nil
		}
		return newFakeStream(), nil
	})
}

func waitFor(t *testing.T, cond func() bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestManager_AcquireIsIdempotent(t *testing.T) {
	s := newFakeStream()
	m := NewManager(instantDevice(s), ManagerOptions{Logger: discardLogger})
	h1, err := m.Acquire(context.Background(), DefaultConstraints())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	h2, err := m.Acquire(context.Background(), DefaultConstraints())
	if err != nil || h1 != h2 {
		t.Fatalf("second acquire should return the held handle, got %p vs %p err=%v", h1, h2, err)
	}
	if st := m.Stats(); st.Acquisitions != 1 || !st.Held {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestManager_ConcurrentAcquireJoinsInFlight(t *testing.T) {
	d := newGatedDevice()
	m := NewManager(d, ManagerOptions{Logger: discardLogger})
	results := make(chan *Handle, 2)
	for i := 0; i < 2; i++ {
		go func() {
			h, _ := m.Acquire(context.Background(), DefaultConstraints())
			results <- h
		}()
	}
	<-d.started
	waitFor(t, func() bool { return m.Stats().Joins == 1 }, time.Second)
	d.open()
	a, b := <-results, <-results
	if a == nil || a != b {
		t.Fatalf("both callers should share one handle, got %p and %p", a, b)
	}
	if d.callCount() != 1 {
		t.Fatalf("device acquired %d times, want 1", d.callCount())
	}
}

func TestManager_ReleaseAtMostOnce(t *testing.T) {
	s := newFakeStream()
	m := NewManager(instantDevice(s), ManagerOptions{})
	h, _ := m.Acquire(context.Background(), DefaultConstraints())
	m.Release(h)
	m.Release(h)
	m.Release(nil)
	if n := s.track.stops.Load(); n != 1 {
		t.Fatalf("track stopped %d times, want 1", n)
	}
	if !h.Released() || m.Held() != nil {
		t.Fatalf("handle should be released and no longer held")
	}
	if st := m.Stats(); st.Releases != 1 {
		t.Fatalf("expected 1 release, got %d", st.Releases)
	}
}

func TestManager_AbandonBeforeResolution(t *testing.T) {
	d := newGatedDevice()
	m := NewManager(d, ManagerOptions{Logger: discardLogger})
	errc := make(chan error, 1)
	go func() {
		_, err := m.Acquire(context.Background(), DefaultConstraints())
		errc <- err
	}()
	<-d.started
	m.Abandon()
	d.open()
	if err := <-errc; !errors.Is(err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned, got %v", err)
	}
	if n := d.stream(0).track.stops.Load(); n != 1 {
		t.Fatalf("late stream should be stopped once, got %d", n)
	}
	if m.Held() != nil {
		t.Fatalf("abandoned acquisition must not be held")
	}
	if st := m.Stats(); st.Abandoned != 1 {
		t.Fatalf("expected abandoned count 1, got %+v", st)
	}
}

func TestManager_JoinRevivesAbandonedAcquisition(t *testing.T) {
	d := newGatedDevice()
	m := NewManager(d, ManagerOptions{})
	first := make(chan error, 1)
	go func() {
		_, err := m.Acquire(context.Background(), DefaultConstraints())
		first <- err
	}()
	<-d.started
	m.Abandon()
	second := make(chan *Handle, 1)
	go func() {
		h, _ := m.Acquire(context.Background(), DefaultConstraints())
		second <- h
	}()
	waitFor(t, func() bool { return m.Stats().Joins == 1 }, time.Second)
	d.open()
	if err := <-first; err != nil {
		t.Fatalf("revived acquisition should succeed, got %v", err)
	}
	if h := <-second; h == nil || h.Released() {
		t.Fatalf("joiner should hold a live handle")
	}
	if d.callCount() != 1 {
		t.Fatalf("expected a single device acquisition, got %d", d.callCount())
	}
}

func TestManager_AbandonedFailureReportsAbandoned(t *testing.T) {
	d := newGatedDevice()
	d.err = context.Canceled
	m := NewManager(d, ManagerOptions{Logger: discardLogger})
	errc := make(chan error, 1)
	go func() {
		_, err := m.Acquire(context.Background(), DefaultConstraints())
		errc <- err
	}()
	<-d.started
	m.Abandon()
	d.open()
	if err := <-errc; !errors.Is(err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned, got %v", err)
	}
	if n := d.stream(0).track.stops.Load(); n != 1 {
		t.Fatalf("partial stream should be stopped once, got %d", n)
	}
	if st := m.Stats(); st.Failures != 0 || st.Abandoned != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestManager_CloseDuringAcquireReportsClosed(t *testing.T) {
	d := newGatedDevice()
	m := NewManager(d, ManagerOptions{Logger: discardLogger})
	errc := make(chan error, 1)
	go func() {
		_, err := m.Acquire(context.Background(), DefaultConstraints())
		errc <- err
	}()
	<-d.started
	m.Close()
	d.open()
	if err := <-errc; !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if n := d.stream(0).track.stops.Load(); n != 1 {
		t.Fatalf("late stream should be stopped once, got %d", n)
	}
	if m.Held() != nil {
		t.Fatalf("closed manager must not hold a handle")
	}
}

func TestManager_PartialFailureReleasesStream(t *testing.T) {
	d := newGatedDevice()
	d.err = errors.New("negotiation failed")
	m := NewManager(d, ManagerOptions{})
	d.open()
	_, err := m.Acquire(context.Background(), DefaultConstraints())
	var ce *CaptureError
	if !errors.As(err, &ce) || ce.Kind != DeviceError {
		t.Fatalf("expected device error, got %v", err)
	}
	if n := d.stream(0).track.stops.Load(); n != 1 {
		t.Fatalf("partial stream should be stopped, got %d", n)
	}
	if st := m.Stats(); st.Failures != 1 || st.Held {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestManager_AwaitReadyEitherOrder(t *testing.T) {
	for _, surfaceFirst := range []bool{true, false} {
		s := newFakeStream()
		m := NewManager(instantDevice(s), ManagerOptions{ReadyTimeout: time.Second})
		h, _ := m.Acquire(context.Background(), DefaultConstraints())
		if surfaceFirst {
			m.SurfaceReady()
		} else {
			s.markReady()
		}
		errc := make(chan error, 1)
		go func() { errc <- m.AwaitReady(context.Background(), h) }()
		time.Sleep(10 * time.Millisecond)
		if m.Ready() {
			t.Fatalf("surfaceFirst=%v: ready before both signals", surfaceFirst)
		}
		if surfaceFirst {
			s.markReady()
		} else {
			m.SurfaceReady()
		}
		if err := <-errc; err != nil {
			t.Fatalf("surfaceFirst=%v: await: %v", surfaceFirst, err)
		}
		if !m.Ready() {
			t.Fatalf("surfaceFirst=%v: expected ready", surfaceFirst)
		}
	}
}

func TestManager_AwaitReadyTimeout(t *testing.T) {
	m := NewManager(instantDevice(), ManagerOptions{ReadyTimeout: 20 * time.Millisecond})
	h, _ := m.Acquire(context.Background(), DefaultConstraints())
	m.SurfaceReady()
	err := m.AwaitReady(context.Background(), h)
	if KindOf(err) != Timeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if m.Ready() {
		t.Fatalf("timed out handle must not report ready")
	}
}

func TestManager_AwaitReadyAbortsOnRelease(t *testing.T) {
	m := NewManager(instantDevice(), ManagerOptions{ReadyTimeout: time.Second})
	h, _ := m.Acquire(context.Background(), DefaultConstraints())
	errc := make(chan error, 1)
	go func() { errc <- m.AwaitReady(context.Background(), h) }()
	m.Abandon()
	if err := <-errc; !errors.Is(err, ErrAbandoned) {
		t.Fatalf("expected ErrAbandoned, got %v", err)
	}
}

func TestManager_SurfaceResetOnRelease(t *testing.T) {
	first, second := newFakeStream(), newFakeStream()
	first.markReady()
	second.markReady()
	m := NewManager(instantDevice(first, second), ManagerOptions{ReadyTimeout: 20 * time.Millisecond})
	h, _ := m.Acquire(context.Background(), DefaultConstraints())
	m.SurfaceReady()
	if err := m.AwaitReady(context.Background(), h); err != nil {
		t.Fatalf("await: %v", err)
	}
	m.Release(h)
	h2, _ := m.Acquire(context.Background(), DefaultConstraints())
	if h2 == h {
		t.Fatalf("expected a fresh handle after release")
	}
	if err := m.AwaitReady(context.Background(), h2); KindOf(err) != Timeout {
		t.Fatalf("surface readiness should not carry over, got %v", err)
	}
}

func TestManager_CloseRefusesAcquire(t *testing.T) {
	s := newFakeStream()
	m := NewManager(instantDevice(s), ManagerOptions{})
	_, _ = m.Acquire(context.Background(), DefaultConstraints())
	m.Close()
	if s.track.stops.Load() != 1 {
		t.Fatalf("close should release the held stream")
	}
	if _, err := m.Acquire(context.Background(), DefaultConstraints()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestManager_NilDeviceUnsupported(t *testing.T) {
	m := NewManager(nil, ManagerOptions{})
	_, err := m.Acquire(context.Background(), DefaultConstraints())
	if KindOf(err) != Unsupported {
		t.Fatalf("expected unsupported, got %v", err)
	}
}
