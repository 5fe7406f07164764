package overlay

import (
	"image"
	"sync"
)

// Composed frames are large and produced continuously while Live. They are
// drawn into pooled buffers; consumers that are done with a frame hand it
// back through Renderer.Recycle. Frames that are never recycled are simply
// collected.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect. The returned Pix
// length exactly matches rect area * 4, and Stride is width*4.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

func recycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}
