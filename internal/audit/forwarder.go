package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"backoffice/internal/platform/metrics"
)

// Forwarder publishes persisted audit records to a Kafka topic for
// downstream compliance sinks. Forwarding is strictly best-effort: the store
// is the source of truth and unreachable brokers never fail the request
// path.
type Forwarder struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewForwarder connects a producer to the given brokers.
func NewForwarder(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*Forwarder, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Forwarder{client: client, topic: topic, logger: logger, metrics: m}, nil
}

// EnsureTopic creates the audit topic if it does not exist yet.
func (f *Forwarder) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(f.client)
	resp, err := adm.CreateTopic(ctx, 1, 1, nil, f.topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", resp.Err)
	}
	return nil
}

// Forward publishes a record asynchronously. Failures are counted and
// logged; the record is already durable in the store.
func (f *Forwarder) Forward(rec Record) {
	value, err := json.Marshal(rec)
	if err != nil {
		f.metrics.AuditForwardDropped.Inc()
		f.logger.Warn("audit forward marshal failed", "error", err, "record_id", rec.ID)
		return
	}

	f.client.Produce(context.Background(), &kgo.Record{
		Key:   []byte(rec.ID.String()),
		Value: value,
	}, func(_ *kgo.Record, err error) {
		if err != nil {
			f.metrics.AuditForwardDropped.Inc()
			f.logger.Warn("audit forward failed", "error", err, "record_id", rec.ID)
		}
	})
}

// Close flushes buffered records and releases the client.
func (f *Forwarder) Close() {
	f.client.Close()
}
