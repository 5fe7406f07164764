package view

import (
	"fmt"
	"image"
	"image/color"

	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/domain/sizing"
	"github.com/soocke/wallpreview-go/ui/images"
	"github.com/soocke/wallpreview-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// liveScreen owns the composed-frame label and the live controls.
type liveScreen struct {
	surface   *LabelWidget
	zoomLbl   *TLabelWidget
	sizeLbl   *LabelWidget
	w, h      int
	prevPhoto *Img // last Tk photo; deleted before replacing to avoid accumulating image data
}

func newLiveScreen(parent *FrameWidget, cfg *config.Config, sizes []sizing.SizeOption, on Handlers) *liveScreen {
	s := &liveScreen{w: cfg.SurfaceWidth, h: cfg.SurfaceHeight}
	s.prevPhoto = NewPhoto(Data(s.blank()))
	s.surface = parent.Label(Image(s.prevPhoto), Borderwidth(0))
	Grid(s.surface, Row(0), Column(0), Columnspan(6), Padx("0.4m"), Pady("0.4m"))
	// Coordinates are relative to the label, which is exactly the surface.
	tap := func(e *Event) {
		if on.Tap != nil && e != nil {
			on.Tap(float64(e.X), float64(e.Y))
		}
	}
	Bind(s.surface, "<ButtonRelease-1>", Command(tap))

	sizeRow := parent.Frame()
	Grid(sizeRow, Row(1), Column(0), Columnspan(6), Sticky("we"))
	for i, opt := range sizes {
		id := opt.ID
		btn := sizeRow.Button(Txt(opt.Label), Command(func() {
			if on.SelectSize != nil {
				on.SelectSize(id)
			}
		}))
		Grid(btn, Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	zoomOut := parent.Button(Txt("-"), Width(3), Command(func() { zoom(on, -sizing.ZoomStep) }))
	Grid(zoomOut, Row(2), Column(0), Sticky("w"), Padx("0.2m"))
	s.zoomLbl = parent.TLabel(Txt("100%"), Style(theme.StyleAccentLabel), Width(6))
	Grid(s.zoomLbl, Row(2), Column(1), Padx("0.2m"))
	zoomIn := parent.Button(Txt("+"), Width(3), Command(func() { zoom(on, sizing.ZoomStep) }))
	Grid(zoomIn, Row(2), Column(2), Sticky("w"), Padx("0.2m"))
	s.sizeLbl = parent.Label(Txt(""), Anchor("w"))
	Grid(s.sizeLbl, Row(2), Column(3), Sticky("we"), Padx("0.4m"))
	exit := parent.TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(func() { call(on.ExitLive) }))
	Grid(exit, Row(2), Column(5), Sticky("e"), Padx("0.2m"))

	if cfg.ShopURL != "" {
		shop := parent.TLabel(Txt("Buy this print: "+cfg.ShopURL), Style(theme.StyleMutedLabel))
		Grid(shop, Row(3), Column(0), Columnspan(6), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	}
	return s
}

func zoom(on Handlers, delta float64) {
	if on.Zoom != nil {
		on.Zoom(delta)
	}
}

func (s *liveScreen) rect() image.Rectangle { return image.Rect(0, 0, s.w, s.h) }

func (s *liveScreen) blank() []byte {
	return images.Placeholder(s.w, s.h, color.Black)
}

func (s *liveScreen) updateFrame(img image.Image) {
	if s.surface == nil || img == nil {
		return
	}
	s.replace(images.EncodePNG(img))
}

func (s *liveScreen) reset() {
	if s.surface != nil {
		s.replace(s.blank())
	}
}

func (s *liveScreen) replace(pngBytes []byte) {
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
	}
	s.prevPhoto = NewPhoto(Data(pngBytes))
	s.surface.Configure(Image(s.prevPhoto))
}

func (s *liveScreen) setZoom(percent int) {
	if s.zoomLbl != nil {
		s.zoomLbl.Configure(Txt(fmt.Sprintf("%d%%", percent)))
	}
}

func (s *liveScreen) setSize(text string) {
	if s.sizeLbl != nil {
		s.sizeLbl.Configure(Txt(text))
	}
}

func (s *liveScreen) dispose() {
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
		s.prevPhoto = nil
	}
	s.surface = nil
}
