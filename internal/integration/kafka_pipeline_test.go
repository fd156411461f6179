//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/et0-merge/internal/adapter/csvfile"
	"github.com/couchcryptid/et0-merge/internal/adapter/kafka"
	"github.com/couchcryptid/et0-merge/internal/adapter/tsv"
	"github.com/couchcryptid/et0-merge/internal/config"
	"github.com/couchcryptid/et0-merge/internal/domain"
	"github.com/couchcryptid/et0-merge/internal/observability"
	"github.com/couchcryptid/et0-merge/internal/pipeline"
)

const testTopic = "test-et0-records"

const archiveHeader = "leto\tmesec\tdan\tPadavine\tEvapotranspiracija\n"

type publishedRecord struct {
	Record  map[string]string
	Key     string
	Headers map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("et0-merge-test"),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka: %v", err)
		}
	})
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedRecord {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec map[string]string
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal record")

	return publishedRecord{Record: rec, Key: string(msg.Key), Headers: headers}
}

// TestPipeline_PublishesToKafka runs a full merge with the Kafka sink enabled
// and reads the published records back in order.
func TestPipeline_PublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	dir := t.TempDir()
	for name, body := range map[string]string{
		"Bilje.csv":              archiveHeader + "2021\t6\t15\t0.0\t4.2\n",
		"Maribor_-_letlisce.csv": archiveHeader + "2019\t12\t31\t0.0\t0.4\n2020\t1\t1\t0.0\t0.5\n",
		"Novo_mesto.csv":         archiveHeader + "2023\t12\t31\t0.0\t0.60\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	cfg := &config.Config{
		DataDir:      dir,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}
	logger := discardLogger()
	writer := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		tsv.NewReader(dir, logger),
		pipeline.NewTransformer(domain.DefaultWindow(), logger),
		[]pipeline.Loader{
			csvfile.NewWriter(filepath.Join(dir, domain.OutputFile), logger),
			writer,
		},
		logger,
		observability.NewMetricsForTesting(),
		clockwork.NewRealClock(),
	)

	res, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Rows)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	want := []map[string]string{
		{"name": "Bilje", "date": "2021-06-15", "ET0": "4.2"},
		{"name": "Maribor", "date": "2020-01-01", "ET0": "0.5"},
		{"name": "Novo mesto", "date": "2023-12-31", "ET0": "0.60"},
	}
	for _, w := range want {
		got := readPublished(ctx, t, consumer)
		assert.Equal(t, w, got.Record)
		assert.Equal(t, w["name"]+"|"+w["date"], got.Key)
		assert.Equal(t, w["name"], got.Headers["station"])
		assert.Equal(t, w["date"], got.Headers["date"])
	}
}
