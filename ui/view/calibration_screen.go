package view

import (
	"fmt"

	"github.com/soocke/wallpreview-go/domain/sizing"
	"github.com/soocke/wallpreview-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// newCalibrationScreen offers one button per viewing distance.
func newCalibrationScreen(parent *FrameWidget, profiles []sizing.CalibrationProfile, on Handlers) {
	prompt := parent.Label(Txt("How far are you from the wall?"))
	Grid(prompt, Row(0), Column(0), Sticky("w"), Pady("0.5m"))
	for i, p := range profiles {
		id := p.ID
		btn := parent.TButton(
			Txt(fmt.Sprintf("%s  (%.0f px/in)", p.Label, p.PixelsPerInch)),
			Style(theme.StylePrimaryButton),
			Command(func() {
				if on.ChooseDistance != nil {
					on.ChooseDistance(id)
				}
			}),
		)
		Grid(btn, Row(i+1), Column(0), Sticky("we"), Padx("0.6m"), Pady("0.3m"))
	}
}
