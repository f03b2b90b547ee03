package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/platform/metrics"
	"backoffice/pkg/requestcontext"
)

// Recorder is the best-effort post-action hook every mutating operation
// calls after its own mutation succeeds. Record never returns an error and
// never panics: by the time it runs the primary action is already committed,
// so a failed audit write is logged and counted, nothing more.
type Recorder struct {
	store     Store
	forwarder *Forwarder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewRecorder builds a recorder. forwarder may be nil (no Kafka configured).
func NewRecorder(store Store, forwarder *Forwarder, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{store: store, forwarder: forwarder, logger: logger, metrics: m}
}

// Record captures one administrative action. Actor identity comes from the
// request context; deviceInfo falls back to the captured User-Agent when
// empty. payload may be nil for actions with no change data.
func (r *Recorder) Record(ctx context.Context, actionKind, deviceInfo string, payload json.RawMessage) {
	if deviceInfo == "" {
		deviceInfo = requestcontext.UserAgent(ctx)
	}
	rec := Record{
		ID:            uuid.New(),
		ActorID:       requestcontext.AdminID(ctx),
		ActorName:     requestcontext.AdminName(ctx),
		ActionKind:    actionKind,
		Timestamp:     time.Now().UTC(),
		DeviceInfo:    deviceInfo,
		ChangePayload: payload,
	}

	// The primary action already succeeded; its request being cancelled must
	// not abort the audit write.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := r.store.Append(writeCtx, rec); err != nil {
		r.metrics.AuditWriteFailures.Inc()
		r.logger.WarnContext(ctx, "audit record dropped",
			"error", err,
			"action_kind", actionKind,
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	r.metrics.AuditRecordsWritten.Inc()

	if r.forwarder != nil {
		r.forwarder.Forward(rec)
	}
}
