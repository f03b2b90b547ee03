package live

import (
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/platform/metrics"
)

func newTestHub() (*Hub, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), m), m
}

func drain(sub *Subscriber) []Event {
	var out []Event
	for {
		select {
		case ev := <-sub.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	hub, _ := newTestHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Broadcast(EventCreated)
	hub.Broadcast(EventUpdated)

	assert.Equal(t, []Event{EventCreated, EventUpdated}, drain(a))
	assert.Equal(t, []Event{EventCreated, EventUpdated}, drain(b))
}

func TestHubDropsForSlowSubscriberWithoutBlocking(t *testing.T) {
	hub, m := newTestHub()
	slow := hub.Subscribe()
	fast := hub.Subscribe()

	// Overfill the slow subscriber's buffer; Broadcast must not block and the
	// fast subscriber must still see everything it has room for.
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Broadcast(EventCreated)
		drain(fast)
	}

	assert.Len(t, drain(slow), subscriberBuffer)
	assert.Equal(t, float64(5), testutil.ToFloat64(m.LiveEventsDropped))
}

func TestHubUnsubscribeClosesStream(t *testing.T) {
	hub, m := newTestHub()
	sub := hub.Subscribe()
	require.Equal(t, float64(1), testutil.ToFloat64(m.LiveConnections))

	hub.Unsubscribe(sub)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.LiveConnections))

	_, open := <-sub.Events()
	assert.False(t, open)

	// Second unsubscribe of the same session is harmless.
	assert.NotPanics(t, func() { hub.Unsubscribe(sub) })

	hub.Broadcast(EventDeleted)
}

func TestHubPublishIsBroadcast(t *testing.T) {
	hub, _ := newTestHub()
	sub := hub.Subscribe()

	var pub Publisher = hub
	pub.Publish(EventDeleted)

	assert.Equal(t, []Event{EventDeleted}, drain(sub))
}
