package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PostgresStore persists notifications in the notifications table.
//
//	CREATE TABLE notifications (
//	    id            UUID PRIMARY KEY,
//	    title         TEXT NOT NULL,
//	    message       TEXT NOT NULL,
//	    is_read       BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_by    UUID NOT NULL,
//	    creator_name  TEXT NOT NULL DEFAULT '',
//	    creator_email TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO notifications (id, title, message, is_read, created_by, creator_name, creator_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Title, rec.Message, rec.IsRead, rec.CreatedBy, rec.CreatorName, rec.CreatorEmail, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (Record, error) {
	query := `
		SELECT id, title, message, is_read, created_by, creator_name, creator_email, created_at
		FROM notifications WHERE id = $1
	`
	var rec Record
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Title, &rec.Message, &rec.IsRead, &rec.CreatedBy, &rec.CreatorName, &rec.CreatorEmail, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("find notification: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, title, message, is_read, created_by, creator_name, creator_email, created_at
		FROM notifications ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Message, &rec.IsRead, &rec.CreatedBy, &rec.CreatorName, &rec.CreatorEmail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Update(ctx context.Context, rec Record) error {
	query := `
		UPDATE notifications SET title = $2, message = $3, is_read = $4 WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, rec.ID, rec.Title, rec.Message, rec.IsRead)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
