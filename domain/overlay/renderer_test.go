package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestCompose_DrawsArtworkInsideRect(t *testing.T) {
	r, err := NewRenderer(4, nil)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	frame := solid(320, 180, color.RGBA{B: 0xff, A: 0xff})
	art := Artwork{ID: "a", Image: solid(40, 50, color.RGBA{R: 0xff, A: 0xff})}
	plan := Plan{Render: true, CenterX: 50, CenterY: 50, WidthPx: 40, HeightPx: 50}

	out := r.Compose(frame, 160, 90, false, plan, art)
	defer r.Recycle(out)
	if out.Bounds() != image.Rect(0, 0, 160, 90) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if c := out.RGBAAt(80, 45); c.R != 0xff || c.B != 0 {
		t.Fatalf("centre should be artwork red, got %+v", c)
	}
	if c := out.RGBAAt(5, 5); c.B != 0xff || c.R != 0 {
		t.Fatalf("corner should be frame blue, got %+v", c)
	}
	if r.CacheLen() != 1 {
		t.Fatalf("expected one cached fit, got %d", r.CacheLen())
	}
	r.Recycle(r.Compose(frame, 160, 90, false, plan, art))
	if r.CacheLen() != 1 {
		t.Fatalf("same id and size should hit the cache")
	}
	r.Purge()
	if r.CacheLen() != 0 {
		t.Fatalf("purge should empty the cache")
	}
}

func TestCompose_NoFrameNoPlan(t *testing.T) {
	r, _ := NewRenderer(0, nil)
	out := r.Compose(nil, 10, 10, false, Plan{}, Artwork{})
	if c := out.RGBAAt(3, 3); c != (color.RGBA{A: 0xff}) {
		t.Fatalf("expected black backdrop, got %+v", c)
	}
}

func TestCompose_Mirror(t *testing.T) {
	r, _ := NewRenderer(1, nil)
	frame := image.NewRGBA(image.Rect(0, 0, 20, 10))
	draw.Draw(frame, image.Rect(0, 0, 10, 10), image.NewUniform(color.RGBA{R: 0xff, A: 0xff}), image.Point{}, draw.Src)
	draw.Draw(frame, image.Rect(10, 0, 20, 10), image.NewUniform(color.RGBA{G: 0xff, A: 0xff}), image.Point{}, draw.Src)
	out := r.Compose(frame, 20, 10, true, Plan{}, Artwork{})
	if c := out.RGBAAt(2, 5); c.G != 0xff || c.R != 0 {
		t.Fatalf("mirrored left edge should be green, got %+v", c)
	}
}

func TestCoverCrop(t *testing.T) {
	if got := coverCrop(image.Rect(0, 0, 1920, 1080), 100, 100); got != image.Rect(420, 0, 1500, 1080) {
		t.Fatalf("wide source should crop width, got %v", got)
	}
	if got := coverCrop(image.Rect(0, 0, 1000, 1000), 200, 100); got != image.Rect(0, 250, 1000, 750) {
		t.Fatalf("square source should crop height, got %v", got)
	}
}
