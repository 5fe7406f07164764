package sizing

import (
	"errors"
	"math"
	"testing"
)

func TestZoom_AddClamps(t *testing.T) {
	z := DefaultZoomFactor()
	if got := z.Add(-5).Value(); got != MinZoom {
		t.Fatalf("expected %.1f, got %v", MinZoom, got)
	}
	if got := z.Add(5).Value(); got != MaxZoom {
		t.Fatalf("expected %.1f, got %v", MaxZoom, got)
	}
	if got := z.Add(math.Inf(-1)).Value(); got != MinZoom {
		t.Fatalf("-Inf expected min, got %v", got)
	}
	if got := z.Add(math.NaN()).Value(); got != DefaultZoom {
		t.Fatalf("NaN delta should not move zoom, got %v", got)
	}
}

func TestZoom_StepsStayOnGrid(t *testing.T) {
	z := DefaultZoomFactor()
	for i := 0; i < 7; i++ {
		z = z.Add(ZoomStep)
	}
	if z.Value() != 1.7 || z.Percent() != 170 {
		t.Fatalf("expected exactly 1.7 after 7 steps, got %v (%d%%)", z.Value(), z.Percent())
	}
	for i := 0; i < 20; i++ {
		z = z.Add(-ZoomStep)
	}
	if z.Value() != 0.5 {
		t.Fatalf("expected floor 0.5, got %v", z.Value())
	}
}

func TestZoomOf(t *testing.T) {
	cases := map[float64]float64{
		1.26:          1.3,
		0.1:           0.5,
		9:             2.0,
		math.NaN():    1.0,
		math.Inf(1):   2.0,
		math.Inf(-1):  0.5,
		1.0000000001:  1.0,
		0.55000000001: 0.6,
	}
	for in, want := range cases {
		if got := ZoomOf(in).Value(); got != want {
			t.Errorf("ZoomOf(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestZoom_ZeroValueActsAsDefault(t *testing.T) {
	var z Zoom
	if z.Value() != DefaultZoom || z.Percent() != 100 {
		t.Fatalf("zero zoom should read as default, got %v", z.Value())
	}
}

func TestClampZoom(t *testing.T) {
	if ClampZoom(-5) != MinZoom || ClampZoom(5) != MaxZoom || ClampZoom(1.23) != 1.23 || ClampZoom(math.NaN()) != DefaultZoom {
		t.Fatalf("ClampZoom range mismatch")
	}
}

func TestZoomFromTenths(t *testing.T) {
	if z := ZoomFromTenths(13); z.Value() != 1.3 || z.Tenths() != 13 {
		t.Fatalf("expected 1.3, got %v", z.Value())
	}
	if z := ZoomFromTenths(99); z.Value() != MaxZoom {
		t.Fatalf("expected clamp to max, got %v", z.Value())
	}
}

func TestCheckZoom(t *testing.T) {
	for _, v := range []float64{0.5, 1, 1.3, 2} {
		if err := CheckZoom(v); err != nil {
			t.Fatalf("zoom %v: unexpected error %v", v, err)
		}
	}
	for _, v := range []float64{0.4, 2.1, math.NaN(), math.Inf(1)} {
		err := CheckZoom(v)
		var ie *InputError
		if !errors.As(err, &ie) || ie.Code != InvalidZoomRange {
			t.Fatalf("zoom %v: expected InvalidZoomRange, got %v", v, err)
		}
	}
}
