package view

import (
	"github.com/soocke/wallpreview-go/domain/artwork"
	"github.com/soocke/wallpreview-go/ui/images"
	"github.com/soocke/wallpreview-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	thumbW = 220
	thumbH = 220
)

var imageTypes = []FileType{
	{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

type slotWidgets struct {
	thumb   *LabelWidget
	caption *LabelWidget
	photo   *Img
}

type uploadScreen struct {
	slots [2]slotWidgets
	next  *TButtonWidget
}

func newUploadScreen(parent *FrameWidget, slots [2]slotPreview, on Handlers) *uploadScreen {
	s := &uploadScreen{}
	title := parent.Label(Txt("Upload a portrait and a landscape version of the artwork."))
	Grid(title, Row(0), Column(0), Columnspan(2), Sticky("w"), Pady("0.5m"))
	for i, slot := range []artwork.Slot{artwork.SlotPortrait, artwork.SlotLandscape} {
		photo := NewPhoto(Data(images.Placeholder(thumbW, thumbH, nil)))
		thumb := parent.Label(Image(photo), Borderwidth(1), Relief("sunken"))
		Grid(thumb, Row(1), Column(i), Padx("0.6m"), Pady("0.4m"))
		caption := parent.Label(Txt("No "+slot.String()+" image"), Width(36))
		Grid(caption, Row(2), Column(i), Padx("0.6m"))
		pick := parent.Button(Txt("Choose "+slot.String()+"..."), Command(func() {
			files := GetOpenFile(Title("Choose "+slot.String()+" image"), Filetypes(imageTypes))
			if len(files) == 0 || on.PickArtwork == nil {
				return
			}
			on.PickArtwork(slot, files[0])
		}))
		Grid(pick, Row(3), Column(i), Sticky("we"), Padx("0.6m"), Pady("0.3m"))
		s.slots[slot] = slotWidgets{thumb: thumb, caption: caption, photo: photo}
		if slots[slot].thumb != nil {
			s.setSlot(slot, slots[slot])
		}
	}
	s.next = parent.TButton(Txt("Continue"), Style(theme.StylePrimaryButton), Command(func() { call(on.Continue) }))
	Grid(s.next, Row(4), Column(0), Columnspan(2), Sticky("we"), Padx("0.6m"), Pady("0.6m"))
	s.setContinueEnabled(slots[artwork.SlotPortrait].thumb != nil && slots[artwork.SlotLandscape].thumb != nil)
	return s
}

func (s *uploadScreen) setSlot(slot artwork.Slot, p slotPreview) {
	w := &s.slots[slot]
	if w.thumb == nil || len(p.thumb) == 0 {
		return
	}
	if w.photo != nil {
		w.photo.Delete()
	}
	w.photo = NewPhoto(Data(p.thumb))
	w.thumb.Configure(Image(w.photo))
	w.caption.Configure(Txt(p.caption))
}

func (s *uploadScreen) setContinueEnabled(enabled bool) {
	if s.next != nil {
		s.next.Configure(state(enabled))
	}
}

func (s *uploadScreen) dispose() {
	for i := range s.slots {
		if s.slots[i].photo != nil {
			s.slots[i].photo.Delete()
			s.slots[i].photo = nil
		}
	}
}
