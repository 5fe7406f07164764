package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
	"github.com/soocke/wallpreview-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions. Nil handlers are skipped.
type Handlers struct {
	PickArtwork    func(slot artwork.Slot, path string)
	Continue       func()
	ChangeArtwork  func()
	StartLive      func()
	ChooseDistance func(profileID string)
	ExitLive       func()
	Tap            func(x, y float64)
	Zoom           func(delta float64)
	SelectSize     func(id string)
	Quit           func()
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetPhaseLabel(text string)
	ShowScreen(p session.Phase)
	SurfaceRect() image.Rectangle
	UpdateFrame(img image.Image)
	ResetFrame()
	SetStatus(text string)
	SetLiveTime(current, total time.Duration)
	SetZoom(percent int)
	SetSize(text string)
	SetSlot(slot artwork.Slot, img image.Image, caption string)
	SetContinueEnabled(bool)
}

// RootView composes the top-level layout. The body frame holds exactly one
// screen, rebuilt on every ShowScreen.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	on      Handlers

	sizes    []sizing.SizeOption
	profiles []sizing.CalibrationProfile

	// Widgets
	PhaseLabel  *LabelWidget
	StatusLabel *LabelWidget
	Stats       LiveStats
	body        *FrameWidget

	screen  session.Phase
	upload  *uploadScreen
	preview *previewScreen
	live    *liveScreen

	slots [2]slotPreview
	ready bool
}

type slotPreview struct {
	thumb   []byte
	caption string
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the header; ShowScreen fills the body. sizes and profiles feed the
// size picker and the calibration screen.
func (rv *RootView) Build(sizes []sizing.SizeOption, profiles []sizing.CalibrationProfile, on Handlers) {
	if rv == nil {
		return
	}
	rv.sizes = sizes
	rv.profiles = profiles
	rv.on = on

	header := Frame()
	Grid(header, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.PhaseLabel = Label(Txt("Phase: <none>"), Borderwidth(1), Relief("ridge"))
	Grid(rv.PhaseLabel, In(header), Row(0), Column(0), Sticky("w"), Padx("0.4m"))
	rv.StatusLabel = Label(Txt(""), Width(48), Anchor("w"))
	Grid(rv.StatusLabel, In(header), Row(0), Column(1), Sticky("we"), Padx("0.4m"))
	rv.Stats = NewLiveStats(header, 0, 2)
	quit := Button(Txt("Quit"), Command(func() { call(rv.on.Quit) }))
	Grid(quit, In(header), Row(0), Column(4), Sticky("e"), Padx("0.2m"))
	GridColumnConfigure(header.Window, 1, Weight(1))

	GridRowConfigure(App, 1, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))
	rv.ready = true
}

// ShowScreen replaces the body with the screen for p.
func (rv *RootView) ShowScreen(p session.Phase) {
	if rv == nil || !rv.ready {
		return
	}
	rv.clearBody()
	rv.screen = p
	switch p {
	case session.PhaseUpload:
		rv.upload = newUploadScreen(rv.body, rv.slots, rv.on)
	case session.PhasePreview:
		rv.preview = newPreviewScreen(rv.body, rv.slots, rv.cfg, rv.cfgPath, rv.logger, rv.on)
	case session.PhaseCalibration:
		newCalibrationScreen(rv.body, rv.profiles, rv.on)
	case session.PhaseLive:
		rv.live = newLiveScreen(rv.body, rv.cfg, rv.sizes, rv.on)
	}
}

func (rv *RootView) clearBody() {
	if rv.live != nil {
		rv.live.dispose()
	}
	if rv.upload != nil {
		rv.upload.dispose()
	}
	if rv.preview != nil {
		rv.preview.dispose()
	}
	rv.upload, rv.preview, rv.live = nil, nil, nil
	if rv.body != nil {
		Destroy(rv.body)
	}
	rv.body = Frame()
	Grid(rv.body, Row(1), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
}

// SetPhaseLabel updates the phase label text.
func (rv *RootView) SetPhaseLabel(text string) {
	if rv != nil && rv.PhaseLabel != nil {
		rv.PhaseLabel.Configure(Txt(text))
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetLiveTime updates the live and total durations.
func (rv *RootView) SetLiveTime(current, total time.Duration) {
	if rv == nil || rv.Stats == nil {
		return
	}
	rv.Stats.SetLive(current)
	rv.Stats.SetTotal(total)
}

// SurfaceRect is the live surface in its own coordinates. Empty outside Live.
func (rv *RootView) SurfaceRect() image.Rectangle {
	if rv == nil || rv.live == nil {
		return image.Rectangle{}
	}
	return rv.live.rect()
}

// UpdateFrame proxies to the live screen.
func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.live != nil {
		rv.live.updateFrame(img)
	}
}

// ResetFrame clears the live surface.
func (rv *RootView) ResetFrame() {
	if rv != nil && rv.live != nil {
		rv.live.reset()
	}
}

// SetZoom proxies to the live screen.
func (rv *RootView) SetZoom(percent int) {
	if rv != nil && rv.live != nil {
		rv.live.setZoom(percent)
	}
}

// SetSize proxies to the live screen.
func (rv *RootView) SetSize(text string) {
	if rv != nil && rv.live != nil {
		rv.live.setSize(text)
	}
}

// SetSlot remembers the slot thumbnail and refreshes the upload screen.
func (rv *RootView) SetSlot(slot artwork.Slot, img image.Image, caption string) {
	if rv == nil || (slot != artwork.SlotPortrait && slot != artwork.SlotLandscape) {
		return
	}
	rv.slots[slot] = slotPreview{thumb: images.EncodePNG(images.ScaleToFit(img, thumbW, thumbH)), caption: caption}
	if rv.upload != nil {
		rv.upload.setSlot(slot, rv.slots[slot])
	}
}

// SetContinueEnabled toggles the upload screen's continue button.
func (rv *RootView) SetContinueEnabled(enabled bool) {
	if rv != nil && rv.upload != nil {
		rv.upload.setContinueEnabled(enabled)
	}
}

func call(f func()) {
	if f != nil {
		f()
	}
}

func state(enabled bool) Opt {
	if enabled {
		return State("normal")
	}
	return State("disabled")
}
