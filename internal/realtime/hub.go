package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"foodbox-be/internal/foodpackage"
	"foodbox-be/internal/logger"
	"foodbox-be/internal/metrics"
)

// Hub fans package change events out to the clients watching each
// business. It implements foodpackage.Publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{}

	published metrics.Counter
	delivered metrics.Counter
	dropped   metrics.Counter
	clients   metrics.Gauge
}

func NewHub() *Hub {
	return &Hub{subscribers: map[string]map[*Client]struct{}{}}
}

func (h *Hub) Subscribe(businessID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[businessID]
	if !ok {
		set = map[*Client]struct{}{}
		h.subscribers[businessID] = set
	}
	set[c] = struct{}{}
	h.clients.Inc()
}

func (h *Hub) Unsubscribe(businessID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[businessID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subscribers, businessID)
	}
	h.clients.Dec()
	close(c.send)
}

// Publish marshals the event once and hands it to every subscriber of
// the business. A client whose buffer is full is dropped rather than
// allowed to stall the rest.
func (h *Hub) Publish(businessID string, ev foodpackage.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.L().Error("failed to marshal feed event", zap.Error(err))
		return
	}
	h.published.Inc()

	h.mu.RLock()
	slow := []*Client{}
	for c := range h.subscribers[businessID] {
		select {
		case c.send <- payload:
			h.delivered.Inc()
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.dropped.Inc()
		logger.L().Warn("dropping slow feed subscriber", zap.String("business_id", businessID))
		h.Unsubscribe(businessID, c)
	}
}

// SubscriberCount reports how many clients watch the given business.
func (h *Hub) SubscriberCount(businessID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[businessID])
}

// Stats returns lifetime hub counters.
func (h *Hub) Stats() (published, delivered, dropped uint64, active int64) {
	return h.published.Load(), h.delivered.Load(), h.dropped.Load(), h.clients.Load()
}
