package sizing

import "math"

// Policy selects how pixels-per-inch is derived.
type Policy int

const (
	// PolicyFixedReference derives ppi from a constant on-screen reference length
	// and ignores calibration.
	PolicyFixedReference Policy = iota
	// PolicyCalibrated takes ppi from the active calibration profile.
	PolicyCalibrated
)

func (p Policy) String() string {
	switch p {
	case PolicyFixedReference:
		return "fixed"
	case PolicyCalibrated:
		return "calibrated"
	default:
		return "unknown"
	}
}

// ParsePolicy maps config strings to a Policy. Unknown values select the fixed reference.
func ParsePolicy(s string) Policy {
	if s == "calibrated" {
		return PolicyCalibrated
	}
	return PolicyFixedReference
}

// Reference scale: 250 on-screen pixels represent 36 inches.
const (
	DefaultReferencePixels = 250.0
	DefaultReferenceInches = 36.0
)

// DefaultPixelsPerInch is the fallback scale used whenever no usable calibration exists.
const DefaultPixelsPerInch = DefaultReferencePixels / DefaultReferenceInches

// Converter maps physical sizes to display sizes. The zero value uses the fixed
// default reference scale.
type Converter struct {
	Policy          Policy
	ReferencePixels float64
	ReferenceInches float64
}

// NewConverter returns a converter for policy with the given reference length.
// Non-positive reference values fall back to the defaults.
func NewConverter(policy Policy, refPixels, refInches float64) Converter {
	return Converter{Policy: policy, ReferencePixels: refPixels, ReferenceInches: refInches}
}

// PixelsPerInch resolves the scale for the given calibration, which may be nil.
func (c Converter) PixelsPerInch(calibration *CalibrationProfile) float64 {
	if c.Policy == PolicyCalibrated && calibration != nil && validPPI(calibration.PixelsPerInch) {
		return calibration.PixelsPerInch
	}
	return c.referencePPI()
}

func (c Converter) referencePPI() float64 {
	if validInches(c.ReferencePixels) && validInches(c.ReferenceInches) {
		if ppi := c.ReferencePixels / c.ReferenceInches; validPPI(ppi) {
			return ppi
		}
	}
	return DefaultPixelsPerInch
}

// DisplaySize computes the on-screen size of size at zoom. Zoom outside
// [MinZoom, MaxZoom] is clamped. A size with non-positive or non-finite
// dimensions yields an empty DisplaySize.
func (c Converter) DisplaySize(size SizeOption, calibration *CalibrationProfile, zoom float64) DisplaySize {
	if !validInches(size.WidthInches) || !validInches(size.HeightInches) {
		return DisplaySize{}
	}
	scale := c.PixelsPerInch(calibration) * ClampZoom(zoom)
	w := size.WidthInches * scale
	h := size.HeightInches * scale
	if !finitePositive(w) || !finitePositive(h) {
		return DisplaySize{}
	}
	return DisplaySize{WidthPx: w, HeightPx: h}
}

// ComputeDisplaySize converts size using calibration when present and the fixed
// default scale otherwise.
func ComputeDisplaySize(size SizeOption, calibration *CalibrationProfile, zoom float64) DisplaySize {
	policy := PolicyFixedReference
	if calibration != nil {
		policy = PolicyCalibrated
	}
	return Converter{Policy: policy}.DisplaySize(size, calibration, zoom)
}

func validInches(v float64) bool { return finitePositive(v) }

func validPPI(v float64) bool { return finitePositive(v) }

func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }
