package model

import (
	"image"
	"testing"
	"time"
)

func TestStatusModel_ShowsInOrderAndExpires(t *testing.T) {
	m := NewStatusModel(2 * time.Second)
	base := time.Unix(100, 0)
	if got := m.Current(base); got != "" {
		t.Fatalf("empty model should show nothing, got %q", got)
	}
	m.Push("first")
	m.Push("")
	m.Push("second")
	if m.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d", m.Pending())
	}
	if got := m.Current(base); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if got := m.Current(base.Add(time.Second)); got != "first" {
		t.Fatalf("first should still show, got %q", got)
	}
	if got := m.Current(base.Add(2 * time.Second)); got != "second" {
		t.Fatalf("expected second after expiry, got %q", got)
	}
	if got := m.Current(base.Add(5 * time.Second)); got != "" {
		t.Fatalf("expected empty after all expired, got %q", got)
	}
}

func TestSurfaceModel_Placement(t *testing.T) {
	m := NewSurfaceModel()
	if m.Mounted() {
		t.Fatalf("new surface should be unmounted")
	}
	m.SetRect(image.Rect(10, 20, 110, 220))
	r := m.Placement()
	if r.Left != 10 || r.Top != 20 || r.Width != 100 || r.Height != 200 {
		t.Fatalf("unexpected placement rect %+v", r)
	}
	m.Clear()
	if m.Mounted() || m.Placement().Valid() {
		t.Fatalf("cleared surface should be unmounted")
	}
}
