package presenter

import (
	"image"
	"sync"
	"time"

	"github.com/soocke/wallpreview-go/domain/session"
	"github.com/soocke/wallpreview-go/ui/model"
)

// PhaseService provides the session methods the presenter requires.
type PhaseService interface {
	Phase() session.Phase
	SurfaceReady()
}

// PhaseView switches screens and reports the mounted live surface.
type PhaseView interface {
	SetPhaseLabel(string)
	ShowScreen(session.Phase)
	SurfaceRect() image.Rectangle
}

// PhasePresenter receives machine transitions and reflects the latest one on
// the next Tick. Transitions may arrive from capture goroutines.
type PhasePresenter struct {
	svc     PhaseService
	view    PhaseView
	surface *model.SurfaceModel

	mu      sync.Mutex
	pending []session.State

	shown   bool
	latest  session.Phase
	attempt uint64
}

func NewPhasePresenter(svc PhaseService, view PhaseView, surface *model.SurfaceModel) *PhasePresenter {
	return &PhasePresenter{svc: svc, view: view, surface: surface}
}

// OnState queues next. It matches session.Listener.
func (p *PhasePresenter) OnState(_, next session.State) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, next)
	p.mu.Unlock()
}

// Tick shows the screen of the most recent queued state. A new Live entry
// always remounts the surface, even if the screen was Live already.
func (p *PhasePresenter) Tick(now time.Time) {
	if p == nil || p.svc == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	var last session.State
	have := len(p.pending) > 0
	if have {
		last = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	p.mu.Unlock()

	if !have {
		if p.shown {
			return
		}
		last = session.State{Phase: p.svc.Phase()}
	}
	var attempt uint64
	if last.IsLive() {
		attempt = last.Live.Attempt
	}
	if p.shown && last.Phase == p.latest && attempt == p.attempt {
		return
	}
	p.shown = true
	p.latest = last.Phase
	p.attempt = attempt
	p.view.ShowScreen(last.Phase)
	p.view.SetPhaseLabel("Phase: " + last.Phase.String())

	if last.Phase != session.PhaseLive {
		p.surface.Clear()
		return
	}
	p.surface.SetRect(p.view.SurfaceRect())
	p.svc.SurfaceReady()
}
