//go:build integration

package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"backoffice/internal/notification"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/testutil/containers"
)

const notificationSchema = `
CREATE TABLE IF NOT EXISTS notifications (
    id            UUID PRIMARY KEY,
    title         TEXT NOT NULL,
    message       TEXT NOT NULL,
    is_read       BOOLEAN NOT NULL DEFAULT FALSE,
    created_by    UUID NOT NULL,
    creator_name  TEXT NOT NULL DEFAULT '',
    creator_email TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL
)`

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *notification.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.pg.Exec(s.T(), notificationSchema)
	s.store = notification.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.pg.Exec(s.T(), "TRUNCATE notifications")
}

func (s *PostgresStoreSuite) record(title string, at time.Time) notification.Record {
	return notification.Record{
		ID:           uuid.New(),
		Title:        title,
		Message:      "details",
		CreatedBy:    uuid.New(),
		CreatorName:  "Jordan",
		CreatorEmail: "jordan@example.com",
		CreatedAt:    at,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	rec := s.record("Stock low", time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, rec))

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.Title, found.Title)
	s.Equal(rec.CreatedBy, found.CreatedBy)
	s.Equal(rec.CreatorEmail, found.CreatorEmail)
	s.False(found.IsRead)

	_, err = s.store.FindByID(ctx, uuid.New())
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	older := s.record("older", time.Now().UTC().Add(-time.Hour))
	newer := s.record("newer", time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	records, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("newer", records[0].Title)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	rec := s.record("Original", time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, rec))

	rec.Title = "Revised"
	rec.IsRead = true
	s.Require().NoError(s.store.Update(ctx, rec))

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal("Revised", found.Title)
	s.True(found.IsRead)

	missing := s.record("ghost", time.Now().UTC())
	err = s.store.Update(ctx, missing)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	rec := s.record("Doomed", time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, rec))

	s.Require().NoError(s.store.Delete(ctx, rec.ID))
	err := s.store.Delete(ctx, rec.ID)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}
