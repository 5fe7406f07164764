// Package arsession ties the preview flow together: artwork slots, the phase
// machine, capture lifecycle, placement and overlay decisions. A Session is
// the only owner of that state; there are no package-level singletons.
package arsession

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/domain/capture"
	"github.com/soocke/wallpreview-go/domain/overlay"
	"github.com/soocke/wallpreview-go/domain/placement"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Options wires a Session.
type Options struct {
	Converter sizing.Converter
	Catalog   *sizing.Catalog
	Profiles  []sizing.CalibrationProfile
	// DefaultProfileID is attached to Live when the calibration step is off.
	DefaultProfileID string
	Manager          *capture.Manager
	Placement        placement.Options
	CalibrationStep  bool
	ExitTo           session.ExitTarget
	Constraints      capture.Constraints
	// MirrorFront mirrors the backdrop and anchors for the user-facing camera.
	MirrorFront bool
	// Notify receives one message per failed capture attempt. It is called
	// without the session lock held.
	Notify func(Message)
	Logger *slog.Logger
}

// Snapshot is a consistent read of the session for display.
type Snapshot struct {
	State       session.State
	Anchor      placement.Anchor
	Zoom        sizing.Zoom
	Size        sizing.SizeOption
	Display     sizing.DisplaySize
	Complete    bool
	CameraReady bool
	Mirror      bool
}

// Session is the explicit preview session.
type Session struct {
	mu          sync.Mutex
	machine     *session.Machine
	ctrl        *placement.Controller
	store       *artwork.Store
	manager     *capture.Manager
	conv        sizing.Converter
	catalog     *sizing.Catalog
	constraints capture.Constraints
	mirror      bool
	notify      func(Message)
	logger      *slog.Logger

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// New builds a session in PhaseUpload.
func New(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = sizing.DefaultCatalog()
	}
	if len(opts.Profiles) == 0 {
		opts.Profiles = sizing.DefaultProfiles()
	}
	if opts.Manager == nil {
		opts.Manager = capture.NewManager(nil, capture.ManagerOptions{Logger: opts.Logger})
	}
	if opts.Constraints == (capture.Constraints{}) {
		opts.Constraints = capture.DefaultConstraints()
	}
	var def *sizing.CalibrationProfile
	if p, ok := sizing.FindProfile(opts.Profiles, opts.DefaultProfileID); ok {
		def = &p
	}
	mirror := opts.MirrorFront && opts.Constraints.Facing == capture.FacingUser
	root, cancel := context.WithCancel(context.Background())
	s := &Session{
		store:       artwork.NewStore(),
		manager:     opts.Manager,
		conv:        opts.Converter,
		catalog:     opts.Catalog,
		constraints: opts.Constraints,
		mirror:      mirror,
		notify:      opts.Notify,
		logger:      opts.Logger,
		root:        root,
		cancel:      cancel,
	}
	s.machine = session.NewMachine(opts.Logger, session.Options{
		CalibrationStep: opts.CalibrationStep,
		ExitTo:          opts.ExitTo,
		Profiles:        opts.Profiles,
		DefaultProfile:  def,
	})
	popts := opts.Placement
	popts.MirrorX = popts.MirrorX || mirror
	if popts.Logger == nil {
		popts.Logger = opts.Logger
	}
	s.ctrl = placement.NewController(s.machine, opts.Catalog.Default(), popts)
	s.machine.AddListener(s.onTransition)
	return s
}

// onTransition keeps capture and placement in step with the phase.
func (s *Session) onTransition(prev, next session.State) {
	if prev.Phase == session.PhaseLive && next.Phase != session.PhaseLive {
		s.manager.Abandon()
	}
	if next.Phase == session.PhaseLive {
		s.ctrl.ResetForLive()
	}
}

// AddListener forwards phase transitions to l.
func (s *Session) AddListener(l session.Listener) { s.machine.AddListener(l) }

// Profiles returns the calibration choices.
func (s *Session) Profiles() []sizing.CalibrationProfile { return s.machine.Profiles() }

// Catalog returns the size catalog.
func (s *Session) Catalog() *sizing.Catalog { return s.catalog }

// Phase returns the current phase.
func (s *Session) Phase() session.Phase { return s.machine.Current() }

// Upload stores a decoded asset. Outside PhaseUpload it also returns the
// session to Upload.
func (s *Session) Upload(a artwork.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Set(a)
	if s.machine.Current() != session.PhaseUpload {
		s.reject(s.machine.Reupload())
	}
}

// Artwork returns the asset in slot.
func (s *Session) Artwork(slot artwork.Slot) (artwork.Asset, bool) { return s.store.Get(slot) }

// ChangeArtwork returns to Upload keeping the current slots.
func (s *Session) ChangeArtwork() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject(s.machine.Reupload())
}

// Continue leaves Upload once both slots are filled.
func (s *Session) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject(s.machine.Continue(s.store.Complete()))
}

// StartLive starts the AR view. Capture is acquired asynchronously once Live
// is entered; failures are reported through Notify.
func (s *Session) StartLive(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return capture.ErrClosed
	}
	st, err := s.machine.StartLive()
	if err != nil {
		return s.reject(err)
	}
	if st.IsLive() {
		s.beginCapture(ctx, st.Live.Attempt)
	}
	return nil
}

// ChooseDistance picks a calibration profile and enters Live.
func (s *Session) ChooseDistance(ctx context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return capture.ErrClosed
	}
	st, err := s.machine.ChooseDistance(profileID)
	if err != nil {
		return s.reject(err)
	}
	s.beginCapture(ctx, st.Live.Attempt)
	return nil
}

// Exit leaves Live. The capture handle is released by the transition.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject(s.machine.Exit())
}

// SurfaceReady records that the live surface is mounted. Ignored outside Live.
func (s *Session) SurfaceReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machine.Current() != session.PhaseLive {
		s.debug("surface ready ignored outside live")
		return
	}
	s.manager.SurfaceReady()
}

// Tap places the overlay. It reports whether the anchor changed.
func (s *Session) Tap(ev placement.PointerEvent, surface placement.Rect) (placement.Anchor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.OnPointerEvent(ev, surface)
}

// Zoom steps the zoom by delta while Live.
func (s *Session) Zoom(delta float64) (sizing.Zoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.SetZoom(delta)
}

// SelectSize switches the active size by id and clears placement.
func (s *Session) SelectSize(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	opt, ok := s.catalog.Find(id)
	if !ok {
		s.debug("unknown size", "id", id)
		return &UnknownSizeError{ID: id}
	}
	s.ctrl.SelectSize(opt)
	return nil
}

// Overlay returns the current render decision and the artwork it applies to.
func (s *Session) Overlay() (overlay.Plan, overlay.Artwork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.machine.State()
	size := s.ctrl.Size()
	asset, _ := s.store.Get(artwork.SlotFor(size.Orientation))
	plan := overlay.Decide(overlay.Input{
		Phase:   st.Phase,
		Anchor:  s.ctrl.Anchor(),
		Size:    size,
		Image:   asset.Image,
		Display: s.displayLocked(st, size),
		MirrorX: s.ctrl.MirrorX(),
	})
	return plan, overlay.Artwork{ID: asset.ID.String(), Image: asset.Image}
}

// LatestFrame returns the newest frame of the held stream, if any.
func (s *Session) LatestFrame() (capture.FrameSnapshot, bool) {
	h := s.manager.Held()
	if h == nil {
		return capture.FrameSnapshot{}, false
	}
	f := h.LatestFrame()
	return f, f.Image != nil
}

// Snapshot returns a consistent view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.machine.State()
	size := s.ctrl.Size()
	return Snapshot{
		State:       st,
		Anchor:      s.ctrl.Anchor(),
		Zoom:        s.ctrl.Zoom(),
		Size:        size,
		Display:     s.displayLocked(st, size),
		Complete:    s.store.Complete(),
		CameraReady: st.IsLive() && s.manager.Ready(),
		Mirror:      s.mirror,
	}
}

// Mirrored reports whether the backdrop is shown mirrored.
func (s *Session) Mirrored() bool { return s.mirror }

// CaptureStats exposes the manager counters.
func (s *Session) CaptureStats() capture.ManagerStats { return s.manager.Stats() }

// Close releases capture and waits for pending acquisitions to settle.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	// Close the manager first so in-flight acquisitions resolve as closed.
	s.manager.Close()
	s.cancel()
	s.wg.Wait()
}

func (s *Session) displayLocked(st session.State, size sizing.SizeOption) sizing.DisplaySize {
	var profile *sizing.CalibrationProfile
	if st.Live != nil {
		profile = st.Live.Profile
	}
	return s.conv.DisplaySize(size, profile, s.ctrl.Zoom().Value())
}

// beginCapture spawns acquire -> ready -> deliver for attempt. Must be called
// with s.mu held.
func (s *Session) beginCapture(ctx context.Context, attempt uint64) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.root, cancel)
	c := s.constraints
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer stop()
		defer cancel()
		start := time.Now()
		h, err := s.manager.Acquire(ctx, c)
		if err == nil {
			err = s.manager.AwaitReady(ctx, h)
		}
		s.deliver(attempt, err, time.Since(start))
	}()
}

// deliver settles a capture attempt against the current state.
func (s *Session) deliver(attempt uint64, err error, took time.Duration) {
	s.mu.Lock()
	st := s.machine.State()
	current := st.IsLive() && st.Live.Attempt == attempt
	switch {
	case s.closed, errors.Is(err, capture.ErrAbandoned), errors.Is(err, capture.ErrClosed):
		s.mu.Unlock()
		s.debug("capture attempt dropped", "attempt", attempt, "error", err)
		return
	case !current:
		if !st.IsLive() {
			// Phase moved on while acquiring; drop anything the manager holds.
			s.manager.Abandon()
		}
		s.mu.Unlock()
		s.debug("stale capture attempt", "attempt", attempt, "state", st.String())
		return
	case err != nil:
		ce := capture.Classify(err)
		s.reject(s.machine.CaptureFailed(attempt))
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("capture failed", "attempt", attempt, "kind", ce.Kind.String(), "error", ce.Err)
		}
		s.emit(messageFor(ce, attempt))
		return
	}
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("camera ready", "attempt", attempt, "took", took)
	}
}

func (s *Session) emit(m Message) {
	if s.notify != nil {
		s.notify(m)
	}
}

// reject logs state errors at debug level and passes err through.
func (s *Session) reject(err error) error {
	if err != nil && session.IsStateError(err) {
		s.debug("event rejected", "error", err)
	}
	return err
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
