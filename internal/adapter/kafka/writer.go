package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/config"
	"github.com/couchcryptid/sonic-site-check/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Report sections, one message each.
const (
	SectionTiming     = "timing"
	SectionDirections = "directions"
	SectionFlux       = "flux"
)

// Envelope is the JSON value of every published message.
type Envelope struct {
	Site        string          `json:"site"`
	Year        int             `json:"year"`
	GeneratedAt time.Time       `json:"generated_at"`
	Section     string          `json:"section"`
	Data        json.RawMessage `json:"data"`
}

// Writer publishes site reports to a Kafka topic.
// It implements pipeline.ReportLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metric labels.
func (w *Writer) Name() string { return "kafka" }

// LoadReport publishes the timing, directions and flux sections of r in a
// single WriteMessages call. All sections share the site-year key, so they
// land on the same partition in order.
func (w *Writer) LoadReport(ctx context.Context, r domain.SiteReport) error {
	msgs, err := serializeReport(r)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	w.logger.Info("report published", "topic", w.writer.Topic, "key", reportKey(r), "messages", len(msgs))
	return nil
}

// Close flushes pending messages and closes the underlying writer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

func reportKey(r domain.SiteReport) string {
	return r.Site + "-" + strconv.Itoa(r.Year)
}

// serializeReport splits a SiteReport into one message per section.
func serializeReport(r domain.SiteReport) ([]kafkago.Message, error) {
	sections := []struct {
		name string
		data any
	}{
		{SectionTiming, r.Timing},
		{SectionDirections, r.Directions},
		{SectionFlux, r.Flux},
	}
	msgs := make([]kafkago.Message, 0, len(sections))
	for _, s := range sections {
		msg, err := serializeToMessage(r, s.name, s.data)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage wraps one report section into a Kafka message.
func serializeToMessage(r domain.SiteReport, section string, data any) (kafkago.Message, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s section: %w", section, err)
	}
	value, err := json.Marshal(Envelope{
		Site:        r.Site,
		Year:        r.Year,
		GeneratedAt: r.GeneratedAt,
		Section:     section,
		Data:        payload,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s envelope: %w", section, err)
	}
	return kafkago.Message{
		Key:   []byte(reportKey(r)),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "section", Value: []byte(section)},
			{Key: "generated_at", Value: []byte(r.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
