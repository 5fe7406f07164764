package model

import (
	"time"
)

// LiveModel tracks how long the current live view has been open and the
// accumulated live time of the session. Presenters poll Values().
// The zero value is ready to use.
type LiveModel struct {
	active      bool
	entered     time.Time
	current     time.Duration
	accumulated time.Duration
	entries     int
}

// NewLiveModel returns a pointer to a ready-to-use LiveModel.
func NewLiveModel() *LiveModel { return &LiveModel{} }

// OnTick updates the model from the current live flag and timestamp.
func (m *LiveModel) OnTick(live bool, now time.Time) {
	if m == nil {
		return
	}
	if live {
		if !m.active { // entered live
			m.active = true
			m.entered = now
			m.current = 0
			m.entries++
		}
		m.current = now.Sub(m.entered)
	} else if m.active { // left live
		m.current = now.Sub(m.entered)
		m.accumulated += m.current
		m.active = false
	}
}

// Values returns the current live duration and the total including it.
func (m *LiveModel) Values() (current, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	current = m.current
	total = m.accumulated
	if m.active {
		total += current
	}
	return
}

// Entries reports how many times live was entered.
func (m *LiveModel) Entries() int {
	if m == nil {
		return 0
	}
	return m.entries
}
