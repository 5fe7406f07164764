package model

import (
	"sync"
	"time"
)

// DefaultStatusTTL is how long a status message stays visible.
const DefaultStatusTTL = 4 * time.Second

type statusEntry struct {
	text  string
	until time.Time
}

// StatusModel queues user-facing messages. Push may be called from any
// goroutine; Current is polled from the UI tick.
type StatusModel struct {
	mu      sync.Mutex
	ttl     time.Duration
	queue   []statusEntry
	showing *statusEntry
}

// NewStatusModel returns a model showing each message for ttl (or DefaultStatusTTL).
func NewStatusModel(ttl time.Duration) *StatusModel {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusModel{ttl: ttl}
}

// Push enqueues text. Empty text is ignored.
func (m *StatusModel) Push(text string) {
	if m == nil || text == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, statusEntry{text: text})
}

// Current returns the message to show at now, advancing through the queue as
// messages expire. It returns "" when nothing is pending.
func (m *StatusModel) Current(now time.Time) string {
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.showing != nil && now.Before(m.showing.until) {
		return m.showing.text
	}
	m.showing = nil
	if len(m.queue) == 0 {
		return ""
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	next.until = now.Add(m.ttl)
	m.showing = &next
	return next.text
}

// Pending reports queued messages not yet shown.
func (m *StatusModel) Pending() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
