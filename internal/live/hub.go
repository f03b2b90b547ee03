package live

import (
	"log/slog"
	"sync"

	"backoffice/internal/platform/metrics"
)

// subscriberBuffer bounds the per-subscriber signal queue. A full buffer
// means the subscriber is behind; dropping is safe because any later signal
// triggers the same full resync.
const subscriberBuffer = 16

// Subscriber is one connected dashboard's view of the channel.
type Subscriber struct {
	ch chan Event
}

// Events returns the signal stream. The channel closes on Unsubscribe.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Hub fans signals out to every subscribed dashboard in this process.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscriber]struct{}
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHub(logger *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		subs:    make(map[*Subscriber]struct{}),
		logger:  logger,
		metrics: m,
	}
}

// Subscribe registers a new dashboard session.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan Event, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.metrics.LiveConnections.Inc()
	return sub
}

// Unsubscribe removes a session and closes its stream. Safe to call once per
// subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	if ok {
		delete(h.subs, sub)
	}
	h.mu.Unlock()
	if ok {
		close(sub.ch)
		h.metrics.LiveConnections.Dec()
	}
}

// Broadcast delivers an event to every subscriber without blocking. Slow
// subscribers lose the signal; they recover on their next resync.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.metrics.NotificationEvents.WithLabelValues(string(event)).Inc()
	for sub := range h.subs {
		select {
		case sub.ch <- event:
		default:
			h.metrics.LiveEventsDropped.Inc()
			h.logger.Warn("live event dropped for slow subscriber", "event", string(event))
		}
	}
}

// Publish lets the hub serve as the Publisher when no backplane is
// configured.
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}
