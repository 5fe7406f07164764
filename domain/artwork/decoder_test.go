package artwork

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

type result struct {
	a   Asset
	err error
}

func await(t *testing.T, ch <-chan result) result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("decode did not complete")
		return result{}
	}
}

func TestDecoder_DecodePNG(t *testing.T) {
	data := pngBytes(t, 8, 10)
	a, err := NewDecoder(discardLogger).Decode(SlotPortrait, "art.png", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Image.Bounds().Dx() != 8 || a.Image.Bounds().Dy() != 10 {
		t.Fatalf("unexpected bounds %v", a.Image.Bounds())
	}
	if a.Bytes != int64(len(data)) || a.Source != "art.png" || a.Slot != SlotPortrait {
		t.Fatalf("unexpected asset metadata %+v", a)
	}
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("asset should get an id")
	}
}

func TestDecoder_DecodeAsyncReportsErrors(t *testing.T) {
	ch := make(chan result, 1)
	NewDecoder(nil).DecodeAsync(SlotLandscape, "junk.bin", strings.NewReader("not an image"), func(a Asset, err error) {
		ch <- result{a, err}
	})
	r := await(t, ch)
	if r.err == nil || r.a.Filled() {
		t.Fatalf("expected decode error, got %+v", r)
	}
}

func TestDecoder_DecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	if err := os.WriteFile(path, pngBytes(t, 12, 4), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	ch := make(chan result, 1)
	d := NewDecoder(discardLogger)
	d.DecodeFile(SlotLandscape, path, func(a Asset, err error) { ch <- result{a, err} })
	r := await(t, ch)
	if r.err != nil || !r.a.Filled() || r.a.Source != "wide.png" {
		t.Fatalf("unexpected result %+v", r)
	}
	d.DecodeFile(SlotLandscape, filepath.Join(t.TempDir(), "missing.png"), func(a Asset, err error) { ch <- result{a, err} })
	if r := await(t, ch); r.err == nil {
		t.Fatalf("missing file should fail")
	}
}
