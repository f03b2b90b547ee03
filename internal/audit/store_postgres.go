package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore persists records in the audit_records table.
//
//	CREATE TABLE audit_records (
//	    id             UUID PRIMARY KEY,
//	    actor_id       UUID NOT NULL,
//	    actor_name     TEXT NOT NULL DEFAULT '',
//	    action_kind    TEXT NOT NULL,
//	    occurred_at    TIMESTAMPTZ NOT NULL,
//	    device_info    TEXT NOT NULL DEFAULT '',
//	    change_payload JSONB
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO audit_records (id, actor_id, actor_name, action_kind, occurred_at, device_info, change_payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	var payload any
	if len(rec.ChangePayload) > 0 {
		payload = []byte(rec.ChangePayload)
	}
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.ActorID, rec.ActorName, rec.ActionKind, rec.Timestamp, rec.DeviceInfo, payload,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, actor_id, actor_name, action_kind, occurred_at, device_info, change_payload
		FROM audit_records
		ORDER BY occurred_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.ActorID, &rec.ActorName, &rec.ActionKind, &rec.Timestamp, &rec.DeviceInfo, &payload); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if len(payload) > 0 {
			rec.ChangePayload = payload
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audit record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete audit record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM audit_records`); err != nil {
		return fmt.Errorf("delete all audit records: %w", err)
	}
	return nil
}
