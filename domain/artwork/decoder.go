package artwork

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	// Registered image formats besides the stdlib ones imaging pulls in.
	_ "golang.org/x/image/webp"
)

// Decoder turns uploaded bytes into assets. Decoding runs off the caller's
// goroutine and has no timeout.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder returns a decoder logging through logger.
func NewDecoder(logger *slog.Logger) *Decoder { return &Decoder{logger: logger} }

// Decode reads r fully and decodes it with EXIF auto-orientation.
func (d *Decoder) Decode(slot Slot, name string, r io.Reader) (Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Asset{}, fmt.Errorf("read %s: %w", name, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Asset{}, fmt.Errorf("decode %s: %w", name, err)
	}
	a := Asset{
		ID:     uuid.New(),
		Slot:   slot,
		Image:  img,
		Source: name,
		Bytes:  int64(len(data)),
	}
	if d.logger != nil {
		b := img.Bounds()
		d.logger.Info("artwork decoded",
			"slot", slot.String(),
			"source", name,
			"size", humanize.Bytes(uint64(a.Bytes)),
			"width", b.Dx(),
			"height", b.Dy(),
			"id", a.ID.String(),
		)
	}
	return a, nil
}

// DecodeAsync decodes r on a new goroutine and calls done with the result.
// done runs on that goroutine.
func (d *Decoder) DecodeAsync(slot Slot, name string, r io.Reader, done func(Asset, error)) {
	go d.run(slot, name, func() (Asset, error) { return d.Decode(slot, name, r) }, done)
}

// DecodeFile opens and decodes path asynchronously.
func (d *Decoder) DecodeFile(slot Slot, path string, done func(Asset, error)) {
	go d.run(slot, path, func() (Asset, error) {
		f, err := os.Open(path)
		if err != nil {
			return Asset{}, fmt.Errorf("open artwork: %w", err)
		}
		defer f.Close()
		return d.Decode(slot, filepath.Base(path), f)
	}, done)
}

func (d *Decoder) run(slot Slot, name string, decode func() (Asset, error), done func(Asset, error)) {
	a, err := func() (a Asset, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				if d.logger != nil {
					d.logger.Error("artwork decode panic", "source", name, "panic", rec)
				}
				err = fmt.Errorf("decode %s: panic: %v", name, rec)
			}
		}()
		return decode()
	}()
	if err != nil && d.logger != nil {
		d.logger.Warn("artwork decode failed", "slot", slot.String(), "error", err)
	}
	if done != nil {
		done(a, err)
	}
}
