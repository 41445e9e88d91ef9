package discovery

import (
	"sync"
	"time"

	"foodbox-be/internal/logger"
	"foodbox-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the live discovery sessions. A session that has not been
// touched within the TTL is swept, mirroring the screen being navigated away
// from.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*View
	ttl      time.Duration

	created metrics.Counter
	expired metrics.Counter
	active  metrics.Gauge

	stop chan struct{}
}

func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*View),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go m.janitor()
	return m
}

// Create registers a fresh view and returns its session id.
func (m *Manager) Create() (string, *View) {
	id := uuid.New().String()
	view := NewView()

	m.mu.Lock()
	m.sessions[id] = view
	m.mu.Unlock()

	m.created.Inc()
	m.active.Inc()

	return id, view
}

// Get returns the view for a session id and marks it as seen.
func (m *Manager) Get(id string) (*View, bool) {
	m.mu.Lock()
	view, ok := m.sessions[id]
	m.mu.Unlock()

	if ok {
		view.touch(time.Now())
	}
	return view, ok
}

// Delete drops a session (screen unmount).
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		m.active.Dec()
	}
	return ok
}

// Stats reports lifetime created/expired counts and the live session count.
func (m *Manager) Stats() (created, expired uint64, active int64) {
	return m.created.Load(), m.expired.Load(), m.active.Load()
}

// Close stops the background sweep.
func (m *Manager) Close() {
	close(m.stop)
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, view := range m.sessions {
		if now.Sub(view.seenAt()) > m.ttl {
			delete(m.sessions, id)
			m.expired.Inc()
			m.active.Dec()

			logger.L().Debug("expired discovery session", zap.String("session_id", id))
		}
	}
}
