package session

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// transitionRecorder records phase changes for assertions.
type transitionRecorder struct {
	mu  sync.Mutex
	seq []Phase
}

func (r *transitionRecorder) listener(prev, next State) {
	r.mu.Lock()
	r.seq = append(r.seq, next.Phase)
	r.mu.Unlock()
}

func (r *transitionRecorder) phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make([]Phase, len(r.seq))
	copy(s, r.seq)
	return s
}

func newMachine(opts Options) (*Machine, *transitionRecorder) {
	if opts.Profiles == nil {
		opts.Profiles = sizing.DefaultProfiles()
	}
	m := NewMachine(discardLogger, opts)
	rec := &transitionRecorder{}
	m.AddListener(rec.listener)
	return m, rec
}

func equalPhases(a, b []Phase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMachine_HappyPathWithoutCalibration(t *testing.T) {
	m, rec := newMachine(Options{})
	if m.Current() != PhaseUpload {
		t.Fatalf("expected upload, got %v", m.Current())
	}
	if err := m.Continue(true); err != nil {
		t.Fatalf("continue: %v", err)
	}
	st, err := m.StartLive()
	if err != nil {
		t.Fatalf("start live: %v", err)
	}
	if !st.IsLive() || st.Attempt() != 1 || st.Live.Profile != nil {
		t.Fatalf("unexpected live state %+v", st)
	}
	if err := m.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	want := []Phase{PhasePreview, PhaseLive, PhasePreview}
	if got := rec.phases(); !equalPhases(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if m.State().Live != nil {
		t.Fatalf("live payload must be cleared outside live")
	}
}

func TestMachine_ContinueRequiresBothSlots(t *testing.T) {
	m, rec := newMachine(Options{})
	err := m.Continue(false)
	if !IsStateError(err) {
		t.Fatalf("expected state error, got %v", err)
	}
	if m.Current() != PhaseUpload || len(rec.phases()) != 0 {
		t.Fatalf("rejected event must not transition")
	}
}

func TestMachine_CalibrationFlow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m, _ := newMachine(Options{CalibrationStep: true, Now: func() time.Time { return fixed }})
	_ = m.Continue(true)
	st, err := m.StartLive()
	if err != nil || st.Phase != PhaseCalibration {
		t.Fatalf("expected calibration, got %v err=%v", st, err)
	}
	if _, err := m.ChooseDistance("nowhere"); !IsStateError(err) {
		t.Fatalf("unknown distance should be rejected, got %v", err)
	}
	st, err = m.ChooseDistance("arms-length")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if st.Live == nil || st.Live.Profile == nil || st.Live.Profile.ID != "arms-length" {
		t.Fatalf("expected arms-length profile on live, got %+v", st.Live)
	}
	if !st.Live.Entered.Equal(fixed) {
		t.Fatalf("expected entered %v, got %v", fixed, st.Live.Entered)
	}
}

func TestMachine_IllegalEventsLeaveStateUnchanged(t *testing.T) {
	m, rec := newMachine(Options{})
	checks := []func() error{
		m.Exit,
		func() error { _, err := m.StartLive(); return err },
		func() error { _, err := m.ChooseDistance("close"); return err },
		func() error { return m.CaptureFailed(1) },
	}
	for i, fn := range checks {
		if err := fn(); !IsStateError(err) {
			t.Errorf("check %d: expected state error, got %v", i, err)
		}
	}
	if m.Current() != PhaseUpload || len(rec.phases()) != 0 {
		t.Fatalf("expected no transitions, got %v", rec.phases())
	}
}

func TestMachine_CaptureFailedIgnoresStaleAttempt(t *testing.T) {
	m, _ := newMachine(Options{})
	_ = m.Continue(true)
	first, _ := m.StartLive()
	_ = m.Exit()
	second, _ := m.StartLive()
	if second.Attempt() <= first.Attempt() {
		t.Fatalf("attempt must increase, got %d then %d", first.Attempt(), second.Attempt())
	}
	if err := m.CaptureFailed(first.Attempt()); !IsStateError(err) {
		t.Fatalf("stale failure should be rejected, got %v", err)
	}
	if m.Current() != PhaseLive {
		t.Fatalf("stale failure must not leave live")
	}
	if err := m.CaptureFailed(second.Attempt()); err != nil {
		t.Fatalf("current failure: %v", err)
	}
	if m.Current() != PhasePreview {
		t.Fatalf("expected preview after capture failure, got %v", m.Current())
	}
}

func TestMachine_ExitToUpload(t *testing.T) {
	m, _ := newMachine(Options{ExitTo: ExitToUpload})
	_ = m.Continue(true)
	_, _ = m.StartLive()
	if err := m.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if m.Current() != PhaseUpload {
		t.Fatalf("expected upload, got %v", m.Current())
	}
}

func TestMachine_ReuploadFromAnyPhase(t *testing.T) {
	m, rec := newMachine(Options{CalibrationStep: true})
	if err := m.Reupload(); err != nil {
		t.Fatalf("reupload in upload: %v", err)
	}
	if len(rec.phases()) != 0 {
		t.Fatalf("reupload in upload should not notify")
	}
	_ = m.Continue(true)
	_, _ = m.StartLive()
	if err := m.Reupload(); err != nil {
		t.Fatalf("reupload: %v", err)
	}
	want := []Phase{PhasePreview, PhaseCalibration, PhaseUpload}
	if got := rec.phases(); !equalPhases(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMachine_ListenerMayReadState(t *testing.T) {
	m := NewMachine(discardLogger, Options{})
	var seen Phase
	m.AddListener(func(prev, next State) { seen = m.Current() })
	_ = m.Continue(true)
	if seen != PhasePreview {
		t.Fatalf("listener should observe the committed phase, got %v", seen)
	}
}
