//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"backoffice/internal/audit"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/testutil/containers"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_records (
    id             UUID PRIMARY KEY,
    actor_id       UUID NOT NULL,
    actor_name     TEXT NOT NULL DEFAULT '',
    action_kind    TEXT NOT NULL,
    occurred_at    TIMESTAMPTZ NOT NULL,
    device_info    TEXT NOT NULL DEFAULT '',
    change_payload JSONB
)`

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *audit.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.pg.Exec(s.T(), auditSchema)
	s.store = audit.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.pg.Exec(s.T(), "TRUNCATE audit_records")
}

func (s *PostgresStoreSuite) record(kind string, at time.Time) audit.Record {
	return audit.Record{
		ID:            uuid.New(),
		ActorID:       uuid.New(),
		ActorName:     "Jordan",
		ActionKind:    kind,
		Timestamp:     at,
		DeviceInfo:    "Firefox 121 on Linux",
		ChangePayload: json.RawMessage(`{"title":"Stock low"}`),
	}
}

func (s *PostgresStoreSuite) TestAppendAndList() {
	ctx := context.Background()
	older := s.record(audit.KindCreatedProduct, time.Now().UTC().Add(-time.Hour))
	newer := s.record(audit.KindDeletedProduct, time.Now().UTC())
	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))

	records, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(newer.ID, records[0].ID, "newest first")
	s.JSONEq(`{"title":"Stock low"}`, string(records[0].ChangePayload))
	s.Equal("Jordan", records[0].ActorName)
}

func (s *PostgresStoreSuite) TestNullPayloadRoundTrip() {
	ctx := context.Background()
	rec := s.record(audit.KindLoggedIn, time.Now().UTC())
	rec.ChangePayload = nil
	s.Require().NoError(s.store.Append(ctx, rec))

	records, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Nil(records[0].ChangePayload)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	rec := s.record(audit.KindUpdatedProduct, time.Now().UTC())
	s.Require().NoError(s.store.Append(ctx, rec))

	s.Require().NoError(s.store.Delete(ctx, rec.ID))
	err := s.store.Delete(ctx, rec.ID)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *PostgresStoreSuite) TestDeleteAll() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Append(ctx, s.record(audit.KindCreatedBrand, time.Now().UTC())))
	}
	s.Require().NoError(s.store.DeleteAll(ctx))

	records, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Empty(records)
}
