package notification

import (
	"context"

	"github.com/google/uuid"

	dErrors "backoffice/pkg/domain-errors"
)

// ErrNotFound keeps store-specific 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "notification not found")

// Store is the persistence contract for notification records.
type Store interface {
	Create(ctx context.Context, rec Record) error
	FindByID(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}
