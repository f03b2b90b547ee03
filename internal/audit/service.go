package audit

import (
	"context"
	"sort"

	"github.com/google/uuid"

	dErrors "backoffice/pkg/domain-errors"
)

// Service is the query surface over the record store: list, delete one,
// delete all. Failures surface as coded errors so callers can leave their
// previously rendered state intact instead of clearing it.
type Service struct {
	store         Store
	reconstructor *Reconstructor
}

func NewService(store Store, reconstructor *Reconstructor) *Service {
	return &Service{store: store, reconstructor: reconstructor}
}

// List returns all records, newest first. No ordering is assumed from the
// store.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "could not load audit records", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// View reconstructs the displayable change-set for one record.
func (s *Service) View(ctx context.Context, id uuid.UUID) (View, error) {
	records, err := s.List(ctx)
	if err != nil {
		return View{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return s.reconstructor.Reconstruct(rec), nil
		}
	}
	return View{}, ErrNotFound
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return err
		}
		return dErrors.Wrap(dErrors.CodeUnavailable, "could not delete audit record", err)
	}
	return nil
}

// DeleteAll clears the trail.
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "could not delete audit records", err)
	}
	return nil
}

// Reconstructor exposes the dispatch table so transports can render rows.
func (s *Service) Reconstructor() *Reconstructor {
	return s.reconstructor
}
