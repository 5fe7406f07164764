package presenter

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/wallpreview-go/domain/capture"
	"github.com/soocke/wallpreview-go/domain/overlay"
	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/ui/model"
)

// FrameSource supplies the newest camera frame and the overlay decision.
type FrameSource interface {
	Phase() session.Phase
	LatestFrame() (capture.FrameSnapshot, bool)
	Overlay() (overlay.Plan, overlay.Artwork)
	Mirrored() bool
}

// Compositor renders a frame with the overlay on top.
type Compositor interface {
	Compose(frame image.Image, w, h int, mirror bool, plan overlay.Plan, art overlay.Artwork) *image.RGBA
	Recycle(img *image.RGBA)
}

// FrameView displays composed frames. UpdateFrame must not retain img.
type FrameView interface {
	UpdateFrame(img image.Image)
}

type composeTask struct {
	snapshot capture.FrameSnapshot
	w, h     int
	mirror   bool
	plan     overlay.Plan
	art      overlay.Artwork
}

type composeResult struct {
	sequence uint64
	img      *image.RGBA
	duration time.Duration
	err      error
}

// FramePresenter schedules composition on a worker goroutine and pushes the
// results to the view. Work and result channels hold one item; the oldest is
// dropped when a newer one arrives.
type FramePresenter struct {
	Source     FrameSource
	Compositor Compositor
	View       FrameView
	Surface    *model.SurfaceModel
	logger     *slog.Logger

	workerOnce sync.Once
	stopOnce   sync.Once
	stopped    atomic.Bool
	workCh     chan composeTask
	resultCh   chan composeResult

	lastSeq  uint64
	lastPlan overlay.Plan
	lastArt  string
	lastSize image.Point
}

// NewFramePresenter constructs a frame presenter.
func NewFramePresenter(source FrameSource, comp Compositor, view FrameView, surface *model.SurfaceModel, logger *slog.Logger) *FramePresenter {
	return &FramePresenter{
		Source:     source,
		Compositor: comp,
		View:       view,
		Surface:    surface,
		logger:     logger,
		workCh:     make(chan composeTask, 1),
		resultCh:   make(chan composeResult, 1),
	}
}

// ProcessFrame handles finished compositions and schedules the next one when
// the frame or the overlay changed.
func (p *FramePresenter) ProcessFrame() {
	if p == nil || p.Source == nil || p.Compositor == nil || p.View == nil || p.stopped.Load() {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if p.Source.Phase() != session.PhaseLive {
		p.lastSeq = 0
		return
	}
	rect := p.Surface.Rect()
	if rect.Empty() {
		return
	}
	snapshot, ok := p.Source.LatestFrame()
	if !ok || snapshot.Sequence == 0 {
		return
	}
	plan, art := p.Source.Overlay()
	size := rect.Size()
	if snapshot.Sequence == p.lastSeq && plan == p.lastPlan && art.ID == p.lastArt && size == p.lastSize {
		return
	}
	p.lastSeq = snapshot.Sequence
	p.lastPlan = plan
	p.lastArt = art.ID
	p.lastSize = size
	p.dispatchTask(composeTask{
		snapshot: snapshot,
		w:        size.X,
		h:        size.Y,
		mirror:   p.Source.Mirrored(),
		plan:     plan,
		art:      art,
	})
}

// Stop ends the worker. Pending results are discarded.
func (p *FramePresenter) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		p.ensureWorker()
		close(p.workCh)
	})
}

func (p *FramePresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *FramePresenter) runWorker() {
	for task := range p.workCh {
		res := p.executeTask(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case old := <-p.resultCh:
				if old.img != nil {
					p.Compositor.Recycle(old.img)
				}
			default:
			}
			select {
			case p.resultCh <- res:
			default:
				if res.img != nil {
					p.Compositor.Recycle(res.img)
				}
			}
		}
	}
}

func (p *FramePresenter) dispatchTask(task composeTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *FramePresenter) executeTask(task composeTask) (res composeResult) {
	res.sequence = task.snapshot.Sequence
	defer func() {
		if r := recover(); r != nil {
			res.img = nil
			res.err = &panicError{value: r}
		}
	}()
	start := time.Now()
	res.img = p.Compositor.Compose(task.snapshot.Image, task.w, task.h, task.mirror, task.plan, task.art)
	res.duration = time.Since(start)
	return res
}

func (p *FramePresenter) handleResult(res composeResult) {
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("compose", "error", res.err, "sequence", res.sequence)
		}
		return
	}
	if res.img == nil {
		return
	}
	if p.Source.Phase() == session.PhaseLive {
		p.View.UpdateFrame(res.img)
	}
	p.Compositor.Recycle(res.img)
}
