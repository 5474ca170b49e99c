package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	st, err := generate(&buf, 2023, rand.New(rand.NewPCG(1, 2023)))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, header, lines[0])
	require.Len(t, lines, st.records+1)

	// 365 days of ten-minute blocks.
	assert.Equal(t, 52560, st.records)
	assert.Equal(t, 10, st.malformed)
	assert.Equal(t, 7, st.repeated)
	assert.Equal(t, 17, st.outliers)

	ds := domain.ParseRecords(lines[1:])
	assert.Equal(t, st.records-st.malformed, ds.Len())
	assert.Equal(t, st.malformed, ds.Rejected[domain.RejectFields])

	timing, err := domain.AnalyzeTiming(ds)
	require.NoError(t, err)
	assert.Equal(t, int64(600), timing.IntervalSeconds)
	// The repeat at record 35000 falls on a malformed line.
	assert.Len(t, timing.Glitches, 6)
	assert.True(t, timing.Regular)

	flux, err := domain.AggregateFlux(ds, domain.DefaultFluxBounds)
	require.NoError(t, err)
	// Outliers at 15000, 30000 and 45000 fall on malformed lines.
	assert.Equal(t, 14, flux.LowerOutliers+flux.UpperOutliers)

	dirs := domain.AnalyzeDirections(ds)
	for d := blindFrom; d < blindTo; d++ {
		assert.Zero(t, dirs.Counts[d], "direction %d", d)
	}
}

func TestFormatRecord_RoundTrip(t *testing.T) {
	rec := sample(mustParse(t, "2024-06-01 12:00:00"), rand.New(rand.NewPCG(7, 7)))

	got, ok := domain.ParseRecord(formatRecord(rec))
	require.True(t, ok)
	assert.Equal(t, rec.Time, got.Time)
	assert.Equal(t, rec.WindDirection, got.WindDirection)
	assert.InDelta(t, rec.WindSpeed, got.WindSpeed, 0.005)
	assert.InDelta(t, rec.HeatFlux, got.HeatFlux, 0.05)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(domain.TimeLayout, s)
	require.NoError(t, err)
	return ts
}
