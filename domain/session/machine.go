package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Options configures the flow variant.
type Options struct {
	// CalibrationStep routes start-AR through PhaseCalibration.
	CalibrationStep bool
	ExitTo          ExitTarget
	// Profiles enumerates the distance choices accepted in PhaseCalibration.
	Profiles []sizing.CalibrationProfile
	// DefaultProfile is attached to Live when calibration is skipped. May be nil.
	DefaultProfile *sizing.CalibrationProfile
	Now            func() time.Time
}

// Machine is the single source of truth for the current phase. It is
// concurrency-safe; listeners run after the lock is released, in
// registration order.
type Machine struct {
	mu        sync.Mutex
	state     State
	attempts  uint64
	opts      Options
	logger    *slog.Logger
	listeners []Listener
}

// NewMachine returns a machine in PhaseUpload.
func NewMachine(logger *slog.Logger, opts Options) *Machine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	profiles := make([]sizing.CalibrationProfile, len(opts.Profiles))
	copy(profiles, opts.Profiles)
	opts.Profiles = profiles
	return &Machine{state: State{Phase: PhaseUpload}, opts: opts, logger: logger}
}

// AddListener registers l for subsequent transitions.
func (m *Machine) AddListener(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Phase
}

// State returns a copy of the current tagged state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.state)
}

// Profiles returns the enumerated calibration choices.
func (m *Machine) Profiles() []sizing.CalibrationProfile {
	out := make([]sizing.CalibrationProfile, len(m.opts.Profiles))
	copy(out, m.opts.Profiles)
	return out
}

// Continue moves Upload -> Preview when both artwork slots are filled.
func (m *Machine) Continue(assetsComplete bool) error {
	m.mu.Lock()
	if m.state.Phase != PhaseUpload {
		defer m.mu.Unlock()
		return illegal(EventContinue, m.state.Phase)
	}
	if !assetsComplete {
		defer m.mu.Unlock()
		return guard(EventContinue, m.state.Phase, "both artwork slots must be filled")
	}
	m.commit(State{Phase: PhasePreview})
	return nil
}

// StartLive moves Preview -> Calibration or Preview -> Live depending on Options.
// It returns the resulting state.
func (m *Machine) StartLive() (State, error) {
	m.mu.Lock()
	if m.state.Phase != PhasePreview {
		defer m.mu.Unlock()
		return copyState(m.state), illegal(EventStartLive, m.state.Phase)
	}
	var next State
	if m.opts.CalibrationStep {
		next = State{Phase: PhaseCalibration}
	} else {
		next = m.liveState(m.opts.DefaultProfile)
	}
	m.commit(next)
	return copyState(next), nil
}

// ChooseDistance moves Calibration -> Live when id names an enumerated profile.
func (m *Machine) ChooseDistance(id string) (State, error) {
	m.mu.Lock()
	if m.state.Phase != PhaseCalibration {
		defer m.mu.Unlock()
		return copyState(m.state), illegal(EventChooseDistance, m.state.Phase)
	}
	p, ok := sizing.FindProfile(m.opts.Profiles, id)
	if !ok {
		defer m.mu.Unlock()
		return copyState(m.state), guard(EventChooseDistance, m.state.Phase, "unknown distance "+id)
	}
	next := m.liveState(&p)
	m.commit(next)
	return copyState(next), nil
}

// Exit leaves Live for the configured exit target.
func (m *Machine) Exit() error {
	m.mu.Lock()
	if m.state.Phase != PhaseLive {
		defer m.mu.Unlock()
		return illegal(EventExit, m.state.Phase)
	}
	next := State{Phase: PhasePreview}
	if m.opts.ExitTo == ExitToUpload {
		next = State{Phase: PhaseUpload}
	}
	m.commit(next)
	return nil
}

// CaptureFailed returns Live -> Preview. attempt must match the current Live
// entry; failures of an earlier entry are rejected as stale.
func (m *Machine) CaptureFailed(attempt uint64) error {
	m.mu.Lock()
	if !m.state.IsLive() {
		defer m.mu.Unlock()
		return illegal(EventCaptureFailed, m.state.Phase)
	}
	if m.state.Live.Attempt != attempt {
		defer m.mu.Unlock()
		return guard(EventCaptureFailed, m.state.Phase, "stale capture attempt")
	}
	m.commit(State{Phase: PhasePreview})
	return nil
}

// Reupload returns to Upload from any phase. It is a no-op in Upload.
func (m *Machine) Reupload() error {
	m.mu.Lock()
	if m.state.Phase == PhaseUpload {
		m.mu.Unlock()
		return nil
	}
	m.commit(State{Phase: PhaseUpload})
	return nil
}

func (m *Machine) liveState(p *sizing.CalibrationProfile) State {
	m.attempts++
	var profile *sizing.CalibrationProfile
	if p != nil {
		cp := *p
		profile = &cp
	}
	return State{Phase: PhaseLive, Live: &LiveState{Attempt: m.attempts, Profile: profile, Entered: m.opts.Now()}}
}

// commit stores next, releases the lock and notifies listeners. Must be called
// with m.mu held.
func (m *Machine) commit(next State) {
	prev := m.state
	m.state = next
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("phase transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range listeners {
		l(copyState(prev), copyState(next))
	}
}

func copyState(s State) State {
	if s.Live == nil {
		return s
	}
	live := *s.Live
	return State{Phase: s.Phase, Live: &live}
}
