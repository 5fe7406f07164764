package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Phase    *PhasePresenter
	Upload   *UploadPresenter
	Status   *StatusPresenter
	Frames   *FramePresenter
	Schedule func()
}

func NewLoop(phase *PhasePresenter, upload *UploadPresenter, status *StatusPresenter, frames *FramePresenter, schedule func()) *Loop {
	return &Loop{Phase: phase, Upload: upload, Status: status, Frames: frames, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Screens first so the frame presenter sees the mounted surface.
	if l.Phase != nil {
		l.Phase.Tick(now)
	}
	if l.Upload != nil {
		l.Upload.Tick()
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Frames != nil {
		l.Frames.ProcessFrame()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
