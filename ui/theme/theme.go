package theme

// Palette and ttk styles for the preview shell. InitStyles activates the
// base theme and configures the semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette colors.
const (
	ColorBg        = "#f5f3ef" // gallery wall
	ColorSurface   = "#ffffff"
	ColorBorder    = "#d6d3cd"
	ColorPrimary   = "#1f2937" // buttons
	ColorDanger    = "#b91c1c"
	ColorAccent    = "#a16207" // shop link, zoom readout
	ColorText      = "#111827"
	ColorTextMuted = "#6b7280"
	ColorBackdrop  = "#000000" // live surface before the first frame
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#111111",
			Surface:   "#1c1c1c",
			Border:    "#3a3a3a",
			Primary:   "#e5e7eb",
			Danger:    "#ef4444",
			Accent:    "#facc15",
			Text:      "#f3f4f6",
			TextMuted: "#9ca3af",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAccentLabel   = "accent.TLabel"
	StyleStatusLabel   = "status.TLabel"
	StyleMutedLabel    = "muted.TLabel"
)

var darkMode bool

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark switches the mode and reapplies styles. Returns the new mode.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(CurrentPalette())
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground(p.Surface),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("flat"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("flat"),
	)
	StyleConfigure(StyleAccentLabel,
		Foreground(p.Accent),
		Background(p.AppBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.Surface),
		Background(p.Primary),
		Padding("4p 2p"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Background(p.AppBg),
	)
}
