package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	xdraw "golang.org/x/image/draw"
)

// DefaultCacheSize is the number of fitted artwork bitmaps kept.
const DefaultCacheSize = 32

const shadowOffset = 8

var (
	backdrop = color.RGBA{A: 0xff}
	shadow   = color.NRGBA{A: 0x80}
)

// Artwork is the image drawn over the frame. ID keys the fit cache and must
// change whenever Image does.
type Artwork struct {
	ID    string
	Image image.Image
}

type fitKey struct {
	id   string
	w, h int
}

// Renderer composes camera frames with the artwork overlay.
type Renderer struct {
	cache  *lru.Cache[fitKey, *image.NRGBA]
	logger *slog.Logger
}

// NewRenderer returns a renderer caching up to cacheSize fitted bitmaps.
func NewRenderer(cacheSize int, logger *slog.Logger) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[fitKey, *image.NRGBA](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("overlay cache: %w", err)
	}
	return &Renderer{cache: cache, logger: logger}, nil
}

// Compose draws frame scaled to cover a w x h surface, optionally mirrored,
// and the artwork at plan.Rect on top. A nil frame leaves a black backdrop.
// The result should be handed back through Recycle once displayed.
func (r *Renderer) Compose(frame image.Image, w, h int, mirror bool, plan Plan, art Artwork) *image.RGBA {
	dst := acquireFrame(image.Rect(0, 0, w, h))
	if dst.Pix == nil {
		return dst
	}
	if frame == nil || frame.Bounds().Empty() {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	} else {
		src := frame
		if mirror {
			src = imaging.FlipH(frame)
		}
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, coverCrop(src.Bounds(), w, h), draw.Src, nil)
	}

	rect := plan.Rect(dst.Bounds())
	if rect.Empty() || art.Image == nil {
		return dst
	}
	fitted := r.fit(art, rect.Dx(), rect.Dy())
	shadowRect := rect.Add(image.Pt(0, shadowOffset)).Intersect(dst.Bounds())
	draw.Draw(dst, shadowRect, image.NewUniform(shadow), image.Point{}, draw.Over)
	draw.Draw(dst, rect, fitted, image.Point{}, draw.Over)
	return dst
}

// Recycle returns a composed frame to the pool. img must not be used afterwards.
func (r *Renderer) Recycle(img *image.RGBA) { recycleFrame(img) }

// Purge drops all cached fits, e.g. after the artwork was replaced.
func (r *Renderer) Purge() { r.cache.Purge() }

// CacheLen reports the number of cached fits.
func (r *Renderer) CacheLen() int { return r.cache.Len() }

// fit returns the artwork filled to w x h with object-fit cover semantics.
func (r *Renderer) fit(art Artwork, w, h int) *image.NRGBA {
	key := fitKey{id: art.ID, w: w, h: h}
	if art.ID != "" {
		if img, ok := r.cache.Get(key); ok {
			return img
		}
	}
	img := imaging.Fill(art.Image, w, h, imaging.Center, imaging.Lanczos)
	if art.ID != "" {
		r.cache.Add(key, img)
	} else if r.logger != nil {
		r.logger.Debug("overlay fit without id; not cached", "w", w, "h", h)
	}
	return img
}

// coverCrop returns the centred region of src with the aspect ratio of w x h,
// so scaling it to w x h covers the surface without distortion.
func coverCrop(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return src
	}
	// Compare sw/sh with w/h without floats.
	if sw*h > sh*w {
		cw := sh * w / h
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * h / w
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}
