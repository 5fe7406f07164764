package sizing

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if len(c.Options()) != 3 {
		t.Fatalf("expected 3 sizes, got %d", len(c.Options()))
	}
	if d := c.Default(); d.ID != "16x20" || d.Orientation != Portrait {
		t.Fatalf("unexpected default %+v", d)
	}
	if o, ok := c.Find("24x36"); !ok || o.Orientation != Landscape {
		t.Fatalf("24x36 should be landscape, got %+v ok=%v", o, ok)
	}
	if _, ok := c.Find("nope"); ok {
		t.Fatalf("unknown id should not be found")
	}
}

func TestParseCatalog(t *testing.T) {
	doc := `
default: b
sizes:
  - {id: a, width: 8, height: 10, orientation: portrait}
  - {id: b, width: 30, height: 20, label: "Wide", orientation: Landscape}
`
	c, err := ParseCatalog([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d := c.Default(); d.ID != "b" || d.Label != "Wide" || d.Orientation != Landscape {
		t.Fatalf("unexpected default %+v", d)
	}
	a, _ := c.Find("a")
	if a.Label != `8" × 10"` {
		t.Fatalf("expected generated label, got %q", a.Label)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":       `sizes: []`,
		"duplicate":   "sizes:\n  - {id: a, width: 1, height: 1, orientation: portrait}\n  - {id: a, width: 2, height: 2, orientation: portrait}\n",
		"dimensions":  "sizes:\n  - {id: a, width: 0, height: 1, orientation: portrait}\n",
		"orientation": "sizes:\n  - {id: a, width: 1, height: 1, orientation: diagonal}\n",
		"default":     "default: z\nsizes:\n  - {id: a, width: 1, height: 1, orientation: portrait}\n",
		"yaml":        "sizes: [",
	}
	for name, doc := range cases {
		if _, err := LoadCatalog(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCatalog_WithDefault(t *testing.T) {
	c := DefaultCatalog()
	if got := c.WithDefault("24x36").Default().ID; got != "24x36" {
		t.Fatalf("expected 24x36, got %s", got)
	}
	if got := c.WithDefault("missing").Default().ID; got != "16x20" {
		t.Fatalf("unknown id should keep default, got %s", got)
	}
}
