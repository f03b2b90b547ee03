package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/audit"
	"backoffice/internal/live"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/requestcontext"
)

// Service owns the notification lifecycle. Every successful mutation emits a
// live signal and a best-effort audit record; neither can fail the mutation.
type Service struct {
	store     Store
	publisher live.Publisher
	recorder  *audit.Recorder
	logger    *slog.Logger
}

func NewService(store Store, publisher live.Publisher, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, recorder: recorder, logger: logger}
}

// Create stores a new notification owned by the acting admin.
func (s *Service) Create(ctx context.Context, title, message string) (Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Record{}, dErrors.New(dErrors.CodeBadRequest, "title is required")
	}

	rec := Record{
		ID:           uuid.New(),
		Title:        title,
		Message:      message,
		IsRead:       false,
		CreatedBy:    requestcontext.AdminID(ctx),
		CreatorName:  requestcontext.AdminName(ctx),
		CreatorEmail: requestcontext.AdminEmail(ctx),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "could not create notification", err)
	}

	s.audit(ctx, audit.KindCreatedNotification, snapshotOf(rec), nil)
	s.publisher.Publish(live.EventCreated)
	return rec, nil
}

// Update edits title/message. Creator-only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, title, message string) (Record, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !existing.CanModify(requestcontext.AdminID(ctx)) {
		return Record{}, dErrors.New(dErrors.CodeForbidden, "only the creator may edit a notification")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Record{}, dErrors.New(dErrors.CodeBadRequest, "title is required")
	}

	updated := existing
	updated.Title = title
	updated.Message = message
	if err := s.store.Update(ctx, updated); err != nil {
		return Record{}, dErrors.Wrap(dErrors.CodeUnavailable, "could not update notification", err)
	}

	original := snapshotOf(existing)
	s.audit(ctx, audit.KindUpdatedNotification, snapshotOf(updated), &original)
	s.publisher.Publish(live.EventUpdated)
	return updated, nil
}

// Delete removes a notification. Creator-only; it disappears from every
// dashboard via the deleted signal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.CanModify(requestcontext.AdminID(ctx)) {
		return dErrors.New(dErrors.CodeForbidden, "only the creator may delete a notification")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "could not delete notification", err)
	}

	s.audit(ctx, audit.KindDeletedNotification, snapshotOf(existing), nil)
	s.publisher.Publish(live.EventDeleted)
	return nil
}

// MarkRead flips the shared read flag. Any admin may mark; read state is a
// property of the record, not of the viewer.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.setRead(ctx, id, true)
}

// MarkUnread flips the shared read flag back.
func (s *Service) MarkUnread(ctx context.Context, id uuid.UUID) error {
	return s.setRead(ctx, id, false)
}

func (s *Service) setRead(ctx context.Context, id uuid.UUID, read bool) error {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.IsRead == read {
		return nil
	}
	rec.IsRead = read
	if err := s.store.Update(ctx, rec); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "could not update notification", err)
	}
	s.publisher.Publish(live.EventUpdated)
	return nil
}

// List returns all notifications, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "could not load notifications", err)
	}
	return records, nil
}

// UnreadCount returns the number of unread records.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if !rec.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Service) audit(ctx context.Context, kind string, current audit.Snapshot, original *audit.Snapshot) {
	var payload []byte
	var err error
	if original != nil {
		payload, err = audit.EncodeUpdate(current, original)
	} else {
		payload, err = audit.EncodeSnapshot(current)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "encode notification audit payload failed", "error", err)
		return
	}
	s.recorder.Record(ctx, kind, "", payload)
}

func snapshotOf(rec Record) audit.Snapshot {
	return audit.Snapshot{Fields: map[string]any{
		"title":         rec.Title,
		"message":       rec.Message,
		"creator_name":  rec.CreatorName,
		"creator_email": rec.CreatorEmail,
	}}
}
