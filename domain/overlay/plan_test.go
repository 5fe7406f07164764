package overlay

import (
	"image"
	"testing"

	"github.com/soocke/wallpreview-go/domain/placement"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
)

func liveInput() Input {
	return Input{
		Phase:   session.PhaseLive,
		Anchor:  placement.Anchor{X: 30, Y: 50, Placed: true},
		Size:    sizing.DefaultCatalog().Default(),
		Image:   image.NewRGBA(image.Rect(0, 0, 4, 5)),
		Display: sizing.DisplaySize{WidthPx: 100, HeightPx: 125},
	}
}

func TestDecide_RendersOnlyWhenAllHold(t *testing.T) {
	if p := Decide(liveInput()); !p.Render || p.CenterX != 30 || p.CenterY != 50 || p.WidthPx != 100 {
		t.Fatalf("expected render plan, got %+v", p)
	}
	notLive := liveInput()
	notLive.Phase = session.PhasePreview
	notPlaced := liveInput()
	notPlaced.Anchor.Placed = false
	noImage := liveInput()
	noImage.Image = nil
	for name, in := range map[string]Input{"phase": notLive, "placed": notPlaced, "image": noImage} {
		if Decide(in).Render {
			t.Errorf("%s: must not render", name)
		}
	}
}

func TestDecide_MirrorFlipsBackToDisplay(t *testing.T) {
	in := liveInput()
	in.Anchor.X = 70
	in.MirrorX = true
	if p := Decide(in); p.CenterX != 30 {
		t.Fatalf("expected display x 30, got %v", p.CenterX)
	}
}

func TestPlan_RectCentresOnAnchor(t *testing.T) {
	p := Decide(liveInput())
	got := p.Rect(image.Rect(0, 0, 1000, 800))
	want := image.Rect(250, 338, 350, 463)
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !(Plan{}).Rect(image.Rect(0, 0, 10, 10)).Empty() {
		t.Fatalf("non-rendering plan should give an empty rect")
	}
}
