package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// LiveStats shows how long the live view has been open.
type LiveStats interface {
	SetLive(d time.Duration)
	SetTotal(d time.Duration)
}

type liveStats struct {
	liveLbl  *LabelWidget
	totalLbl *LabelWidget
}

// NewLiveStats places the live label at (row, startCol) of parent and the
// total label next to it.
func NewLiveStats(parent *FrameWidget, row, startCol int) LiveStats {
	s := &liveStats{liveLbl: Label(Width(12)), totalLbl: Label(Width(12))}
	Grid(s.liveLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.liveLbl.Configure(Txt("Live: " + clock(0)))
	s.totalLbl.Configure(Txt("Total: " + clock(0)))
	return s
}

func (s *liveStats) SetLive(d time.Duration) {
	if s == nil || s.liveLbl == nil {
		return
	}
	s.liveLbl.Configure(Txt("Live: " + clock(d)))
}

func (s *liveStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + clock(d)))
}

// clock formats d as mm:ss.
func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
