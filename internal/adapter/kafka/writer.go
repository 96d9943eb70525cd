package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/pine-weight-etl/internal/config"
	"github.com/couchcryptid/pine-weight-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes weight estimates to the sink topic in a
// single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, estimates []domain.WeightEstimate) error {
	if len(estimates) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(estimates))
	for i := range estimates {
		msg, err := serializeToMessage(estimates[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d estimates: %w", len(msgs), err)
	}
	w.logger.Debug("estimates written", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a WeightEstimate into a Kafka message keyed by
// its deterministic ID.
func serializeToMessage(est domain.WeightEstimate) (kafkago.Message, error) {
	data, err := json.Marshal(est)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize weight estimate: %w", err)
	}
	headers := []kafkago.Header{
		{Key: "species", Value: []byte(est.Species)},
		{Key: "method", Value: []byte(est.Method)},
		{Key: "processed_at", Value: []byte(est.ProcessedAt.Format(time.RFC3339))},
	}
	if est.Provisional {
		headers = append(headers, kafkago.Header{Key: "provisional", Value: []byte("true")})
	}
	return kafkago.Message{
		Key:     []byte(est.ID),
		Value:   data,
		Headers: headers,
	}, nil
}
