package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/et0-merge/internal/config"
	"github.com/couchcryptid/et0-merge/internal/domain"
)

// Writer publishes merged ET0 records to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes every row of the merged table and publishes them in a
// single WriteMessages call.
func (w *Writer) Load(ctx context.Context, df dataframe.DataFrame) error {
	records, err := domain.Records(df)
	if err != nil {
		return fmt.Errorf("kafka load: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish records: %w", err)
	}

	w.logger.Info("records published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// recordMessage is the JSON value of a published record.
type recordMessage struct {
	Name string `json:"name"`
	Date string `json:"date"`
	ET0  string `json:"ET0"`
}

// serializeToMessage marshals a Record into a Kafka message keyed by
// station and date, so one station's days land on one partition.
func serializeToMessage(rec domain.Record) (kafkago.Message, error) {
	date := rec.Date.Format(domain.DateLayout)
	data, err := json.Marshal(recordMessage{Name: rec.Name, Date: date, ET0: rec.ET0})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Name + "|" + date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station", Value: []byte(rec.Name)},
			{Key: "date", Value: []byte(date)},
		},
	}, nil
}
