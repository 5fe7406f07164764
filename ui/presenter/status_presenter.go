package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/wallpreview-go/domain/arsession"
	"github.com/soocke/wallpreview-go/ui/model"
)

// LoadingText is shown while the live view waits for the camera.
const LoadingText = "Loading camera..."

// SnapshotSource provides a consistent read of the session.
type SnapshotSource interface {
	Snapshot() arsession.Snapshot
}

// StatusView displays the status line, live duration, zoom and size.
type StatusView interface {
	SetStatus(text string)
	SetLiveTime(current, total time.Duration)
	SetZoom(percent int)
	SetSize(text string)
}

// StatusPresenter formats session state and queued messages for the view.
type StatusPresenter struct {
	src    SnapshotSource
	live   *model.LiveModel
	status *model.StatusModel
	view   StatusView

	lastStatus string
	lastZoom   int
	lastSize   string
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(src SnapshotSource, live *model.LiveModel, status *model.StatusModel, view StatusView) *StatusPresenter {
	return &StatusPresenter{src: src, live: live, status: status, view: view, lastZoom: -1}
}

// Notify queues a capture message. It is safe to call from any goroutine and
// matches the session's Notify option.
func (p *StatusPresenter) Notify(m arsession.Message) {
	if p == nil || p.status == nil {
		return
	}
	p.status.Push(m.Text)
}

// Tick advances the live timer and pushes changed values to the view.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	snap := p.src.Snapshot()
	live := snap.State.IsLive()
	p.live.OnTick(live, now)
	cur, total := p.live.Values()
	p.view.SetLiveTime(cur, total)

	text := p.status.Current(now)
	if text == "" && live && !snap.CameraReady {
		text = LoadingText
	}
	if text != p.lastStatus {
		p.lastStatus = text
		p.view.SetStatus(text)
	}
	if z := snap.Zoom.Percent(); z != p.lastZoom {
		p.lastZoom = z
		p.view.SetZoom(z)
	}
	size := fmt.Sprintf("%s  %.0fx%.0f px", snap.Size.Label, snap.Display.WidthPx, snap.Display.HeightPx)
	if size != p.lastSize {
		p.lastSize = size
		p.view.SetSize(size)
	}
}
