package sizing

import (
	"fmt"
	"strings"
)

// Orientation selects which artwork slot a size option draws from.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// ParseOrientation accepts "portrait" or "landscape" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return 0, fmt.Errorf("sizing: unknown orientation %q", s)
	}
}

// SizeOption is a read-only catalog entry describing a printable artwork size.
type SizeOption struct {
	ID           string
	WidthInches  float64
	HeightInches float64
	Label        string
	Orientation  Orientation
}

// AspectRatio returns width/height, or 0 for a degenerate option.
func (s SizeOption) AspectRatio() float64 {
	if !validInches(s.WidthInches) || !validInches(s.HeightInches) {
		return 0
	}
	return s.WidthInches / s.HeightInches
}

// CalibrationProfile is a viewing-distance assumption mapped to a pixels-per-inch constant.
type CalibrationProfile struct {
	ID            string
	Label         string
	PixelsPerInch float64
}

// DisplaySize is an on-screen size in pixels. Both fields are finite and >= 0.
type DisplaySize struct {
	WidthPx  float64
	HeightPx float64
}

// Empty reports whether the size has no drawable area.
func (d DisplaySize) Empty() bool { return d.WidthPx <= 0 || d.HeightPx <= 0 }

// Round returns the size rounded to whole pixels, at least 1x1 for non-empty sizes.
func (d DisplaySize) Round() (w, h int) {
	if d.Empty() {
		return 0, 0
	}
	w, h = int(d.WidthPx+0.5), int(d.HeightPx+0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// DefaultProfiles are the distance assumptions offered when config provides none.
func DefaultProfiles() []CalibrationProfile {
	return []CalibrationProfile{
		{ID: "close", Label: "Close (about 1 m)", PixelsPerInch: 12},
		{ID: "arms-length", Label: "Arm's length (about 2 m)", PixelsPerInch: 8},
		{ID: "across-room", Label: "Across the room (3 m+)", PixelsPerInch: 5},
	}
}

// FindProfile returns the profile with id from profiles.
func FindProfile(profiles []CalibrationProfile, id string) (CalibrationProfile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return CalibrationProfile{}, false
}
