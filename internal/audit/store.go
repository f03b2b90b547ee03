package audit

import (
	"context"

	"github.com/google/uuid"

	dErrors "backoffice/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across the in-memory and
// postgres implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "audit record not found")

// Store is the append-only persistence contract for audit records. Stores
// never interpret the change payload.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}
