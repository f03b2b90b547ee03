package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"backoffice/internal/audit"
	"backoffice/internal/live"
	"backoffice/internal/platform/metrics"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/requestcontext"
)

// capturingPublisher records every live event the service emits.
type capturingPublisher struct {
	events []live.Event
}

func (p *capturingPublisher) Publish(ev live.Event) { p.events = append(p.events, ev) }

type ServiceSuite struct {
	suite.Suite
	store      *InMemoryStore
	auditStore *audit.InMemoryStore
	publisher  *capturingPublisher
	service    *Service
	creator    uuid.UUID
	other      uuid.UUID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = NewInMemoryStore()
	s.auditStore = audit.NewInMemoryStore()
	s.publisher = &capturingPublisher{}
	recorder := audit.NewRecorder(s.auditStore, nil, logger, metrics.New(prometheus.NewRegistry()))
	s.service = NewService(s.store, s.publisher, recorder, logger)
	s.creator = uuid.New()
	s.other = uuid.New()
}

func (s *ServiceSuite) asAdmin(id uuid.UUID, name, email string) context.Context {
	ctx := requestcontext.WithAdminID(context.Background(), id)
	ctx = requestcontext.WithAdminName(ctx, name)
	return requestcontext.WithAdminEmail(ctx, email)
}

func (s *ServiceSuite) creatorCtx() context.Context {
	return s.asAdmin(s.creator, "Jordan", "jordan@example.com")
}

func (s *ServiceSuite) TestCreate() {
	s.Run("stamps creator identity", func() {
		rec, err := s.service.Create(s.creatorCtx(), "Stock low", "Desk stock below threshold")
		s.Require().NoError(err)
		s.Equal(s.creator, rec.CreatedBy)
		s.Equal("Jordan", rec.CreatorName)
		s.Equal("jordan@example.com", rec.CreatorEmail)
		s.False(rec.IsRead)
		s.False(rec.CreatedAt.IsZero())

		s.Equal([]live.Event{live.EventCreated}, s.publisher.events)

		trail, err := s.auditStore.List(context.Background())
		s.Require().NoError(err)
		s.Require().Len(trail, 1)
		s.Equal(audit.KindCreatedNotification, trail[0].ActionKind)
		s.JSONEq(`{
			"title": "Stock low",
			"message": "Desk stock below threshold",
			"creator_name": "Jordan",
			"creator_email": "jordan@example.com"
		}`, string(trail[0].ChangePayload))
	})

	s.Run("rejects blank title", func() {
		_, err := s.service.Create(s.creatorCtx(), "   ", "body")
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUpdate() {
	rec, err := s.service.Create(s.creatorCtx(), "Original", "first")
	s.Require().NoError(err)
	s.publisher.events = nil

	s.Run("creator may edit", func() {
		updated, err := s.service.Update(s.creatorCtx(), rec.ID, "Revised", "second")
		s.Require().NoError(err)
		s.Equal("Revised", updated.Title)
		s.Equal([]live.Event{live.EventUpdated}, s.publisher.events)

		trail, err := s.auditStore.List(context.Background())
		s.Require().NoError(err)
		s.Require().Len(trail, 2)
		last := trail[len(trail)-1]
		s.Equal(audit.KindUpdatedNotification, last.ActionKind)
		s.Contains(string(last.ChangePayload), `"updatedData"`)
		s.Contains(string(last.ChangePayload), `"originalData"`)
		s.Contains(string(last.ChangePayload), `"Original"`)
	})

	s.Run("non-creator is forbidden", func() {
		s.publisher.events = nil
		_, err := s.service.Update(s.asAdmin(s.other, "Priya", "priya@example.com"), rec.ID, "Hijacked", "x")
		s.True(dErrors.Is(err, dErrors.CodeForbidden))
		s.Empty(s.publisher.events, "no signal for a rejected mutation")

		current, err := s.store.FindByID(context.Background(), rec.ID)
		s.Require().NoError(err)
		s.Equal("Revised", current.Title)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.Update(s.creatorCtx(), uuid.New(), "T", "m")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDelete() {
	rec, err := s.service.Create(s.creatorCtx(), "Doomed", "")
	s.Require().NoError(err)
	s.publisher.events = nil

	s.Run("non-creator is forbidden", func() {
		err := s.service.Delete(s.asAdmin(s.other, "Priya", "priya@example.com"), rec.ID)
		s.True(dErrors.Is(err, dErrors.CodeForbidden))
		s.Empty(s.publisher.events)
	})

	s.Run("creator may delete", func() {
		s.Require().NoError(s.service.Delete(s.creatorCtx(), rec.ID))
		s.Equal([]live.Event{live.EventDeleted}, s.publisher.events)

		_, err := s.store.FindByID(context.Background(), rec.ID)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))

		trail, err := s.auditStore.List(context.Background())
		s.Require().NoError(err)
		s.Equal(audit.KindDeletedNotification, trail[len(trail)-1].ActionKind)
	})
}

func (s *ServiceSuite) TestReadFlag() {
	rec, err := s.service.Create(s.creatorCtx(), "Read me", "")
	s.Require().NoError(err)
	auditCount := func() int {
		trail, err := s.auditStore.List(context.Background())
		s.Require().NoError(err)
		return len(trail)
	}
	baseline := auditCount()
	s.publisher.events = nil

	s.Run("any admin may mark read", func() {
		s.Require().NoError(s.service.MarkRead(s.asAdmin(s.other, "Priya", "priya@example.com"), rec.ID))
		current, err := s.store.FindByID(context.Background(), rec.ID)
		s.Require().NoError(err)
		s.True(current.IsRead)
		s.Equal([]live.Event{live.EventUpdated}, s.publisher.events)
		s.Equal(baseline, auditCount(), "read flips are not audited")
	})

	s.Run("marking read twice is a no-op", func() {
		s.publisher.events = nil
		s.Require().NoError(s.service.MarkRead(s.creatorCtx(), rec.ID))
		s.Empty(s.publisher.events)
	})

	s.Run("mark unread flips back", func() {
		s.publisher.events = nil
		s.Require().NoError(s.service.MarkUnread(s.creatorCtx(), rec.ID))
		current, err := s.store.FindByID(context.Background(), rec.ID)
		s.Require().NoError(err)
		s.False(current.IsRead)
		s.Equal([]live.Event{live.EventUpdated}, s.publisher.events)
	})
}

func (s *ServiceSuite) TestUnreadCount() {
	ctx := s.creatorCtx()
	first, err := s.service.Create(ctx, "One", "")
	s.Require().NoError(err)
	_, err = s.service.Create(ctx, "Two", "")
	s.Require().NoError(err)
	_, err = s.service.Create(ctx, "Three", "")
	s.Require().NoError(err)

	count, err := s.service.UnreadCount(ctx)
	s.Require().NoError(err)
	s.Equal(3, count)

	s.Require().NoError(s.service.MarkRead(ctx, first.ID))
	count, err = s.service.UnreadCount(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}
