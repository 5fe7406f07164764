package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/soocke/wallpreview-go/domain/artwork"
)

// Decoder decodes an image file off the UI thread and reports through done.
type Decoder interface {
	DecodeFile(slot artwork.Slot, path string, done func(artwork.Asset, error))
}

// UploadService is the subset of the session used by the upload screen.
type UploadService interface {
	Upload(a artwork.Asset)
	Artwork(slot artwork.Slot) (artwork.Asset, bool)
	Continue() error
}

// UploadView shows the slot previews and the continue button state.
type UploadView interface {
	SetSlot(slot artwork.Slot, img image.Image, caption string)
	SetContinueEnabled(bool)
}

// MessageSink receives user-facing messages.
type MessageSink interface{ Push(text string) }

type decoded struct {
	asset artwork.Asset
	path  string
	err   error
}

// UploadPresenter decodes picked files and applies them on the next Tick, so
// slot updates happen on the UI thread in pick order.
type UploadPresenter struct {
	dec      Decoder
	svc      UploadService
	view     UploadView
	messages MessageSink
	logger   *slog.Logger

	mu      sync.Mutex
	results []decoded
	pending int
}

func NewUploadPresenter(dec Decoder, svc UploadService, view UploadView, messages MessageSink, logger *slog.Logger) *UploadPresenter {
	return &UploadPresenter{dec: dec, svc: svc, view: view, messages: messages, logger: logger}
}

// Pick starts decoding path into slot. Empty paths (a cancelled dialog) are ignored.
func (p *UploadPresenter) Pick(slot artwork.Slot, path string) {
	if p == nil || p.dec == nil || path == "" {
		return
	}
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()
	p.dec.DecodeFile(slot, path, func(a artwork.Asset, err error) {
		p.mu.Lock()
		p.results = append(p.results, decoded{asset: a, path: path, err: err})
		p.mu.Unlock()
	})
}

// Busy reports whether a decode is still running.
func (p *UploadPresenter) Busy() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending > 0
}

// Continue leaves the upload screen when both slots are filled.
func (p *UploadPresenter) Continue() {
	if p == nil || p.svc == nil {
		return
	}
	if err := p.svc.Continue(); err != nil {
		if p.messages != nil {
			p.messages.Push("Upload both a portrait and a landscape image first.")
		}
		if p.logger != nil {
			p.logger.Debug("continue rejected", "error", err)
		}
	}
}

// Tick applies finished decodes.
func (p *UploadPresenter) Tick() {
	if p == nil || p.svc == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	batch := p.results
	p.results = nil
	p.pending -= len(batch)
	p.mu.Unlock()
	if len(batch) == 0 {
		return
	}
	for _, r := range batch {
		if r.err != nil {
			if p.logger != nil {
				p.logger.Warn("artwork decode failed", "path", r.path, "error", r.err)
			}
			if p.messages != nil {
				p.messages.Push(fmt.Sprintf("Could not read %s", r.path))
			}
			continue
		}
		p.svc.Upload(r.asset)
		p.view.SetSlot(r.asset.Slot, r.asset.Image, caption(r.asset))
	}
	_, portrait := p.svc.Artwork(artwork.SlotPortrait)
	_, landscape := p.svc.Artwork(artwork.SlotLandscape)
	p.view.SetContinueEnabled(portrait && landscape)
}

func caption(a artwork.Asset) string {
	b := a.Image.Bounds()
	return fmt.Sprintf("%s  %dx%d  %s", a.Source, b.Dx(), b.Dy(), humanize.Bytes(uint64(a.Bytes)))
}
