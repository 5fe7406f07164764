package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultReadyTimeout bounds the wait for stream and surface readiness.
const DefaultReadyTimeout = 1500 * time.Millisecond

// Handle is an acquired stream owned by the Manager.
type Handle struct {
	id       uint64
	stream   Stream
	facing   Facing
	acquired time.Time

	ready        atomic.Bool
	releaseOnce  sync.Once
	releasedChan chan struct{}
}

func (h *Handle) ID() uint64                 { return h.id }
func (h *Handle) Facing() Facing             { return h.facing }
func (h *Handle) Acquired() time.Time        { return h.acquired }
func (h *Handle) Stream() Stream             { return h.stream }
func (h *Handle) Done() <-chan struct{}      { return h.releasedChan }
func (h *Handle) LatestFrame() FrameSnapshot { return h.stream.LatestFrame() }

// Released reports whether the handle's tracks have been stopped.
func (h *Handle) Released() bool {
	select {
	case <-h.releasedChan:
		return true
	default:
		return false
	}
}

// stop stops every track once. It reports whether this call did the work.
func (h *Handle) stop() bool {
	did := false
	h.releaseOnce.Do(func() {
		stopStream(h.stream)
		close(h.releasedChan)
		did = true
	})
	return did
}

func stopStream(s Stream) {
	if s == nil {
		return
	}
	for _, t := range s.Tracks() {
		if t != nil {
			t.Stop()
		}
	}
}

// ManagerOptions tunes a Manager.
type ManagerOptions struct {
	ReadyTimeout time.Duration
	Logger       *slog.Logger
}

type acquisition struct {
	done      chan struct{}
	handle    *Handle
	err       error
	abandoned bool
}

// Manager owns at most one capture stream. It is the only component that
// stops tracks. All methods are safe for concurrent use.
type Manager struct {
	device  Device
	timeout time.Duration
	logger  *slog.Logger

	mu         sync.Mutex
	held       *Handle
	inflight   *acquisition
	closed     bool
	surface    chan struct{}
	surfaceSet bool
	nextID     uint64

	acquisitions atomic.Uint64
	joins        atomic.Uint64
	releases     atomic.Uint64
	failures     atomic.Uint64
	abandoned    atomic.Uint64
}

// NewManager returns a manager acquiring from device.
func NewManager(device Device, opts ManagerOptions) *Manager {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = DefaultReadyTimeout
	}
	return &Manager{
		device:  device,
		timeout: opts.ReadyTimeout,
		logger:  opts.Logger,
		surface: make(chan struct{}),
	}
}

// Acquire returns the held handle, joins an in-flight acquisition, or starts a
// new one. Failures are returned as *CaptureError, except ErrAbandoned and
// ErrClosed.
func (m *Manager) Acquire(ctx context.Context, c Constraints) (*Handle, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if m.held != nil && !m.held.Released() {
		h := m.held
		m.mu.Unlock()
		return h, nil
	}
	if a := m.inflight; a != nil {
		// A new caller wants the stream again.
		a.abandoned = false
		m.mu.Unlock()
		m.joins.Add(1)
		select {
		case <-a.done:
			return a.handle, a.err
		case <-ctx.Done():
			return nil, Classify(ctx.Err())
		}
	}
	a := &acquisition{done: make(chan struct{})}
	m.inflight = a
	m.mu.Unlock()

	stream, err := m.acquireDevice(ctx, c)

	m.mu.Lock()
	if m.inflight == a {
		m.inflight = nil
	}
	switch {
	case m.closed:
		stopStream(stream)
		m.abandoned.Add(1)
		a.err = ErrClosed
	case a.abandoned:
		stopStream(stream)
		m.abandoned.Add(1)
		a.err = ErrAbandoned
	case err != nil:
		stopStream(stream)
		m.failures.Add(1)
		a.err = Classify(err)
	default:
		m.nextID++
		h := &Handle{
			id:           m.nextID,
			stream:       stream,
			facing:       c.Facing,
			acquired:     time.Now(),
			releasedChan: make(chan struct{}),
		}
		m.held = h
		m.acquisitions.Add(1)
		a.handle = h
	}
	close(a.done)
	m.mu.Unlock()

	if m.logger != nil {
		if a.err != nil {
			m.logger.Debug("capture acquire failed", "error", a.err)
		} else {
			m.logger.Debug("capture acquired", "handle", a.handle.id, "facing", c.Facing.String())
		}
	}
	return a.handle, a.err
}

func (m *Manager) acquireDevice(ctx context.Context, c Constraints) (stream Stream, err error) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("capture device panic", "panic", r)
			}
			err = errors.New("capture device panicked")
		}
	}()
	if m.device == nil {
		return nil, errors.ErrUnsupported
	}
	return m.device.Acquire(ctx, c)
}

// Release stops h's tracks. It is a no-op for nil or released handles.
func (m *Manager) Release(h *Handle) {
	if h == nil {
		return
	}
	m.mu.Lock()
	if m.held == h {
		m.held = nil
		m.resetSurfaceLocked()
	}
	m.mu.Unlock()
	if h.stop() {
		m.releases.Add(1)
		if m.logger != nil {
			m.logger.Debug("capture released", "handle", h.id)
		}
	}
}

// Abandon releases the held handle and marks any in-flight acquisition so its
// stream is released the moment it resolves.
func (m *Manager) Abandon() {
	m.mu.Lock()
	if m.inflight != nil {
		m.inflight.abandoned = true
	}
	h := m.held
	m.mu.Unlock()
	if h != nil {
		m.Release(h)
	} else {
		m.mu.Lock()
		m.resetSurfaceLocked()
		m.mu.Unlock()
	}
}

// Close abandons everything and refuses further acquisitions.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.Abandon()
}

// SurfaceReady records that the rendering surface is mounted.
func (m *Manager) SurfaceReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.surfaceSet {
		m.surfaceSet = true
		close(m.surface)
	}
}

func (m *Manager) resetSurfaceLocked() {
	if m.surfaceSet {
		m.surface = make(chan struct{})
		m.surfaceSet = false
	}
}

// AwaitReady blocks until both the stream of h and the surface are ready, in
// either order. It fails with a Timeout CaptureError after the ready timeout
// and with ErrAbandoned if h is released first.
func (m *Manager) AwaitReady(ctx context.Context, h *Handle) error {
	if h == nil {
		return ErrAbandoned
	}
	m.mu.Lock()
	surface := m.surface
	m.mu.Unlock()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	stream := h.stream.Ready()
	for stream != nil || surface != nil {
		select {
		case <-stream:
			stream = nil
		case <-surface:
			surface = nil
		case <-h.releasedChan:
			return ErrAbandoned
		case <-timer.C:
			return &CaptureError{Kind: Timeout, Err: context.DeadlineExceeded}
		case <-ctx.Done():
			return Classify(ctx.Err())
		}
	}
	if h.Released() {
		return ErrAbandoned
	}
	h.ready.Store(true)
	return nil
}

// Ready reports whether the held handle passed AwaitReady.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held != nil && m.held.ready.Load()
}

// Held returns the held handle or nil.
func (m *Manager) Held() *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// Stats returns a snapshot of the manager counters.
func (m *Manager) Stats() ManagerStats {
	m.mu.Lock()
	h := m.held
	m.mu.Unlock()
	st := ManagerStats{
		Acquisitions: m.acquisitions.Load(),
		Joins:        m.joins.Load(),
		Releases:     m.releases.Load(),
		Failures:     m.failures.Load(),
		Abandoned:    m.abandoned.Load(),
		Held:         h != nil,
		Ready:        h != nil && h.ready.Load(),
	}
	if h != nil {
		if ps, ok := h.stream.(interface{ Stats() PumpStats }); ok {
			pump := ps.Stats()
			st.Pump = &pump
		}
	}
	return st
}
