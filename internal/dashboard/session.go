// Package dashboard models one connected admin dashboard: a live-channel
// subscription, the cached notification snapshot, and the derived unread
// badge count. State is scoped to the session object with an explicit
// Start/Stop lifecycle, so independent sessions (tests, multiple windows)
// never share state.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"backoffice/internal/live"
	"backoffice/internal/notification"
)

// NotificationAPI is the slice of the notification service a session needs.
type NotificationAPI interface {
	List(ctx context.Context) ([]notification.Record, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkUnread(ctx context.Context, id uuid.UUID) error
}

// Session holds one dashboard's derived state. Every channel signal, however
// many times it fires, triggers the same idempotent resynchronization:
// refetch the full list, recount unread. Correctness never depends on which
// event arrived or in what order.
type Session struct {
	api    NotificationAPI
	hub    *live.Hub
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot []notification.Record
	unread   int

	sub    *live.Subscriber
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(hub *live.Hub, api NotificationAPI, logger *slog.Logger) *Session {
	return &Session{api: api, hub: hub, logger: logger}
}

// Start subscribes to the live channel, performs the connect-time resync,
// and consumes signals until Stop or ctx cancellation.
func (s *Session) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.sub = s.hub.Subscribe()
	s.done = make(chan struct{})

	// Resync on connect; a failure here leaves the zero snapshot and the
	// next signal retries.
	if err := s.Resync(runCtx); err != nil {
		s.logger.Warn("initial dashboard resync failed", "error", err)
	}

	go s.run(runCtx)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.sub.Events():
			if !ok {
				return
			}
			if err := s.Resync(ctx); err != nil {
				s.logger.Warn("dashboard resync failed", "error", err)
			}
		}
	}
}

// Stop tears the session down and resets the badge.
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.hub.Unsubscribe(s.sub)
	<-s.done
	s.cancel = nil

	s.mu.Lock()
	s.snapshot = nil
	s.unread = 0
	s.mu.Unlock()
}

// Resync refetches the full list and recomputes the unread count. On fetch
// failure the previously rendered snapshot stays intact. Replaying a resync
// any number of times yields the same visible state.
func (s *Session) Resync(ctx context.Context) error {
	records, err := s.api.List(ctx)
	if err != nil {
		return err
	}

	unread := 0
	for _, rec := range records {
		if !rec.IsRead {
			unread++
		}
	}

	s.mu.Lock()
	s.snapshot = records
	s.unread = unread
	s.mu.Unlock()
	return nil
}

// MarkRead applies the optimistic local flip, calls the backend, then
// resyncs. The badge updates without waiting for a channel signal.
func (s *Session) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.setRead(ctx, id, true, s.api.MarkRead)
}

// MarkUnread is the inverse transition.
func (s *Session) MarkUnread(ctx context.Context, id uuid.UUID) error {
	return s.setRead(ctx, id, false, s.api.MarkUnread)
}

func (s *Session) setRead(ctx context.Context, id uuid.UUID, read bool, apply func(context.Context, uuid.UUID) error) error {
	s.mu.Lock()
	for i, rec := range s.snapshot {
		if rec.ID == id && rec.IsRead != read {
			s.snapshot[i].IsRead = read
			if read {
				s.unread--
			} else {
				s.unread++
			}
			break
		}
	}
	s.mu.Unlock()

	if err := apply(ctx, id); err != nil {
		// Local state may now be ahead of the backend; resync to the truth.
		if rerr := s.Resync(ctx); rerr != nil {
			s.logger.Warn("resync after failed read toggle failed", "error", rerr)
		}
		return err
	}
	return s.Resync(ctx)
}

// Snapshot returns the last successfully fetched list.
func (s *Session) Snapshot() []notification.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]notification.Record, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Unread returns the badge count.
func (s *Session) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}
