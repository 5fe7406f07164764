package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/debug"
	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/domain/placement"
	"github.com/soocke/wallpreview-go/ui/presenter"
	"github.com/soocke/wallpreview-go/ui/theme"
	"github.com/soocke/wallpreview-go/ui/view"
)

const (
	tick = 33 * time.Millisecond
)

// Options configures a shell run.
type Options struct {
	Title      string
	Config     *config.Config
	ConfigPath string
	// Portrait and Landscape are optional image files loaded at start.
	Portrait  string
	Landscape string
}

type app struct {
	ctx     context.Context
	c       *AppContainer
	logger  *slog.Logger
	afterID string
	closed  bool
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, opts Options, logger *slog.Logger) error {
	c, err := BuildContainer(ctx, opts.Config, opts.ConfigPath, logger)
	if err != nil {
		return err
	}
	a := &app{ctx: ctx, c: c, logger: logger}
	defer c.Close()

	title := opts.Title
	if title == "" {
		title = "Wall Preview"
	}
	theme.InitStyles()
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	cfg := c.Config
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.SurfaceWidth+40, cfg.SurfaceHeight+200))

	c.RootView.Build(c.Catalog.Options(), c.Session.Profiles(), a.handlers())
	c.UploadPresenter.Pick(artwork.SlotPortrait, opts.Portrait)
	c.UploadPresenter.Pick(artwork.SlotLandscape, opts.Landscape)

	if cfg.Debug {
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger, c.Session.CaptureStats)
		debug.StartMemLogger(ctx, 10*time.Second, logger)
	}

	c.Loop = presenter.NewLoop(c.PhasePresenter, c.UploadPresenter, c.StatusPresenter, c.FramePresenter, a.scheduleUpdate)
	if logger != nil {
		logger.Info("shell started", "backend", cfg.Backend, "scale_mode", cfg.ScaleMode, "sizes", len(c.Catalog.Options()))
	}
	a.scheduleUpdate()
	App.Wait()
	return nil
}

func (a *app) handlers() view.Handlers {
	c := a.c
	return view.Handlers{
		PickArtwork:    c.UploadPresenter.Pick,
		Continue:       c.UploadPresenter.Continue,
		ChangeArtwork:  func() { a.debugErr("change artwork", c.Session.ChangeArtwork()) },
		StartLive:      c.LivePresenter.Enable,
		ChooseDistance: c.LivePresenter.Choose,
		ExitLive:       c.LivePresenter.Disable,
		Tap: func(x, y float64) {
			c.Session.Tap(placement.Tap(x, y), c.Surface.Placement())
		},
		Zoom:       func(delta float64) { c.Session.Zoom(delta) },
		SelectSize: func(id string) { a.debugErr("select size", c.Session.SelectSize(id)) },
		Quit:       a.exitHandler,
	}
}

func (a *app) update() {
	if a.closed {
		return
	}
	if a.ctx.Err() != nil {
		a.exitHandler()
		return
	}
	// Loop.Tick reschedules itself through Schedule.
	a.c.Loop.Tick()
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) debugErr(op string, err error) {
	if err != nil && a.logger != nil {
		a.logger.Debug(op, "error", err)
	}
}
