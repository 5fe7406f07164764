package view

import (
	"log/slog"

	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

type previewScreen struct {
	settings ConfigPanel
	photos   []*Img
}

func newPreviewScreen(parent *FrameWidget, slots [2]slotPreview, cfg *config.Config, cfgPath string, logger *slog.Logger, on Handlers) *previewScreen {
	s := &previewScreen{}
	for i, slot := range []artwork.Slot{artwork.SlotPortrait, artwork.SlotLandscape} {
		if len(slots[slot].thumb) == 0 {
			continue
		}
		photo := NewPhoto(Data(slots[slot].thumb))
		s.photos = append(s.photos, photo)
		Grid(parent.Label(Image(photo), Borderwidth(1), Relief("groove")), Row(0), Column(i), Padx("0.6m"), Pady("0.4m"))
		Grid(parent.Label(Txt(slots[slot].caption)), Row(1), Column(i), Padx("0.6m"))
	}
	start := parent.TButton(Txt("View on my wall"), Style(theme.StylePrimaryButton), Command(func() { call(on.StartLive) }))
	Grid(start, Row(2), Column(0), Sticky("we"), Padx("0.6m"), Pady("0.6m"))
	change := parent.Button(Txt("Change images"), Command(func() { call(on.ChangeArtwork) }))
	Grid(change, Row(2), Column(1), Sticky("we"), Padx("0.6m"), Pady("0.6m"))

	s.settings = NewConfigPanel(parent, cfg, cfgPath, logger)
	s.settings.Build(3)
	return s
}

func (s *previewScreen) dispose() {
	for _, p := range s.photos {
		p.Delete()
	}
	s.photos = nil
}
