package overlay

import (
	"image"
	"math"

	"github.com/soocke/wallpreview-go/domain/placement"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Input is everything the overlay decision depends on.
type Input struct {
	Phase   session.Phase
	Anchor  placement.Anchor
	Size    sizing.SizeOption
	Image   image.Image
	Display sizing.DisplaySize
	// MirrorX marks the anchor as stored in mirrored camera coordinates.
	MirrorX bool
}

// Plan is the derived render decision. CenterX and CenterY are display-space
// percentages of the surface.
type Plan struct {
	Render   bool
	CenterX  float64
	CenterY  float64
	WidthPx  float64
	HeightPx float64
	SizeID   string
}

// Decide renders iff the phase is Live, the anchor is placed and an image is present.
func Decide(in Input) Plan {
	if in.Phase != session.PhaseLive || !in.Anchor.Placed || in.Image == nil {
		return Plan{}
	}
	x := in.Anchor.X
	if in.MirrorX {
		x = 100 - x
	}
	return Plan{
		Render:   true,
		CenterX:  x,
		CenterY:  in.Anchor.Y,
		WidthPx:  in.Display.WidthPx,
		HeightPx: in.Display.HeightPx,
		SizeID:   in.Size.ID,
	}
}

// Rect returns the pixel rectangle of the overlay centred on the anchor
// within surface. It is empty when the plan does not render.
func (p Plan) Rect(surface image.Rectangle) image.Rectangle {
	if !p.Render || surface.Empty() {
		return image.Rectangle{}
	}
	w := int(math.Round(p.WidthPx))
	h := int(math.Round(p.HeightPx))
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	cx := float64(surface.Min.X) + p.CenterX/100*float64(surface.Dx())
	cy := float64(surface.Min.Y) + p.CenterY/100*float64(surface.Dy())
	x0 := int(math.Round(cx - float64(w)/2))
	y0 := int(math.Round(cy - float64(h)/2))
	return image.Rect(x0, y0, x0+w, y0+h)
}
