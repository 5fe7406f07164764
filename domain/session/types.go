package session

import (
	"fmt"
	"time"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Phase enumerates the stages of the preview flow.
type Phase int

const (
	PhaseUpload Phase = iota
	PhasePreview
	PhaseCalibration
	PhaseLive
)

func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhasePreview:
		return "preview"
	case PhaseCalibration:
		return "calibration"
	case PhaseLive:
		return "live"
	default:
		return "unknown"
	}
}

// LiveState is the payload carried only by PhaseLive.
type LiveState struct {
	// Attempt increases on every Live entry so async completions can be matched
	// against the entry that started them.
	Attempt uint64
	// Profile is the chosen calibration, nil when the flow skipped calibration.
	Profile *sizing.CalibrationProfile
	Entered time.Time
}

// State is the tagged phase value. Live is non-nil iff Phase == PhaseLive.
type State struct {
	Phase Phase
	Live  *LiveState
}

// IsLive reports whether the state is PhaseLive.
func (s State) IsLive() bool { return s.Phase == PhaseLive && s.Live != nil }

// Attempt returns the live attempt id, or 0 outside Live.
func (s State) Attempt() uint64 {
	if s.Live == nil {
		return 0
	}
	return s.Live.Attempt
}

func (s State) String() string {
	if s.Live != nil {
		return fmt.Sprintf("%s#%d", s.Phase, s.Live.Attempt)
	}
	return s.Phase.String()
}

// ExitTarget selects where the exit action leads from Live.
type ExitTarget int

const (
	ExitToPreview ExitTarget = iota
	ExitToUpload
)

// ParseExitTarget maps "upload" to ExitToUpload and anything else to ExitToPreview.
func ParseExitTarget(s string) ExitTarget {
	if s == "upload" {
		return ExitToUpload
	}
	return ExitToPreview
}

// Listener is called after each successful transition.
type Listener func(prev, next State)

// Event names used in transition errors and logs.
const (
	EventContinue       = "continue"
	EventStartLive      = "start_live"
	EventChooseDistance = "choose_distance"
	EventExit           = "exit"
	EventCaptureFailed  = "capture_failed"
	EventReupload       = "reupload"
)
