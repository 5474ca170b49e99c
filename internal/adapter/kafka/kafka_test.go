package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/config"
	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() domain.SiteReport {
	return domain.SiteReport{
		Site:        "torre-1",
		Year:        2024,
		GeneratedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		Timing:      domain.TimingReport{IntervalSeconds: 600, Monotonic: true, Regular: true, Availability: 98.5},
		Flux:        domain.FluxReport{Bounds: domain.DefaultFluxBounds, LowerOutliers: 2},
	}
}

func TestSerializeToMessage(t *testing.T) {
	r := testReport()

	msg, err := serializeToMessage(r, SectionTiming, r.Timing)
	require.NoError(t, err)

	assert.Equal(t, []byte("torre-1-2024"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "section", msg.Headers[0].Key)
	assert.Equal(t, []byte("timing"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-01-15T09:00:00Z"), msg.Headers[1].Value)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "torre-1", env.Site)
	assert.Equal(t, 2024, env.Year)
	assert.Equal(t, SectionTiming, env.Section)

	var timing domain.TimingReport
	require.NoError(t, json.Unmarshal(env.Data, &timing))
	assert.Equal(t, int64(600), timing.IntervalSeconds)
	assert.InDelta(t, 98.5, timing.Availability, 0)
}

func TestSerializeReport(t *testing.T) {
	msgs, err := serializeReport(testReport())
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	var sections []string
	for _, m := range msgs {
		assert.Equal(t, []byte("torre-1-2024"), m.Key)
		sections = append(sections, string(m.Headers[0].Value))
	}
	assert.Equal(t, []string{SectionTiming, SectionDirections, SectionFlux}, sections)
	assert.Contains(t, string(msgs[2].Value), `"lower_outliers":2`)
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaReportTopic: "reports"}, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "kafka", w.Name())
	assert.Equal(t, "reports", w.writer.Topic)
}
