package presenter

import (
	"context"
	"log/slog"

	"github.com/soocke/wallpreview-go/domain/session"
)

// LiveService narrows what the presenter needs from the session.
type LiveService interface {
	Phase() session.Phase
	StartLive(ctx context.Context) error
	ChooseDistance(ctx context.Context, profileID string) error
	Exit() error
}

// LiveView is reset when the live view closes.
type LiveView interface {
	ResetFrame()
}

// LivePresenter owns entering and leaving the live view.
type LivePresenter struct {
	ctx    context.Context
	svc    LiveService
	view   LiveView
	logger *slog.Logger
}

func NewLivePresenter(ctx context.Context, svc LiveService, view LiveView, logger *slog.Logger) *LivePresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &LivePresenter{ctx: ctx, svc: svc, view: view, logger: logger}
}

// Enable starts the AR view from Preview. Idempotent.
func (c *LivePresenter) Enable() {
	if c == nil || c.svc == nil {
		return
	}
	if c.svc.Phase() != session.PhasePreview {
		return
	}
	c.log("start live", c.svc.StartLive(c.ctx))
}

// Choose picks a calibration distance. Only valid in Calibration.
func (c *LivePresenter) Choose(profileID string) {
	if c == nil || c.svc == nil {
		return
	}
	if c.svc.Phase() != session.PhaseCalibration {
		return
	}
	c.log("choose distance", c.svc.ChooseDistance(c.ctx, profileID))
}

// Disable leaves Live and resets the frame. Idempotent.
func (c *LivePresenter) Disable() {
	if c == nil || c.svc == nil || c.view == nil {
		return
	}
	if c.svc.Phase() != session.PhaseLive {
		return
	}
	if err := c.svc.Exit(); err != nil {
		c.log("exit live", err)
		return
	}
	c.view.ResetFrame()
}

// Toggle flips between Preview and Live delegating to Enable/Disable.
func (c *LivePresenter) Toggle() {
	if c == nil || c.svc == nil {
		return
	}
	if c.svc.Phase() == session.PhaseLive {
		c.Disable()
		return
	}
	c.Enable()
}

func (c *LivePresenter) log(op string, err error) {
	if err != nil && c.logger != nil {
		c.logger.Debug(op, "error", err)
	}
}
