package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		line := record(testTime, "5.25", "90.7", "-0.12", "0.5", "0.3", "100.5")
		obs, ok := ParseRecord(line)

		require.True(t, ok)
		want := Observation{
			Time:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			WindSpeed:        5.25,
			WindDirection:    90, // truncated
			Stability:        -0.12,
			TKE:              0.5,
			FrictionVelocity: 0.3,
			HeatFlux:         100.5,
		}
		if diff := cmp.Diff(want, obs); diff != "" {
			t.Errorf("observation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("surrounding blanks and line ending", func(t *testing.T) {
		line := record(testTime, " 5", " 90", " 1", " 0.5", " 0.3", " 100 ") + "\r\n"
		obs, ok := ParseRecord(line)

		require.True(t, ok)
		assert.Equal(t, 90, obs.WindDirection)
		assert.Equal(t, 100.0, obs.HeatFlux)
	})

	t.Run("header line", func(t *testing.T) {
		line := record("date", "vel", "dir", "phi", "tke", "u*", "H0")
		_, ok := ParseRecord(line)
		assert.False(t, ok)
	})

	t.Run("empty line", func(t *testing.T) {
		_, ok := ParseRecord("")
		assert.False(t, ok)
	})
}

func TestParser_RejectReasons(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason RejectReason
	}{
		{"accepted", validRecord(testTime), ""},
		{"too few columns", "2024-01-01 00:00:00,1,2,3", RejectFields},
		{"epoch time stamp", validRecord("1970-01-01 00:00:00"), RejectTimestamp},
		{"before epoch", validRecord("1969-12-31 23:59:59"), RejectTimestamp},
		{"bad time stamp", validRecord("2024-13-01 00:00:00"), RejectTimestamp},
		{"unpadded time stamp", validRecord("2024-1-1 0:00:00"), RejectTimestamp},
		{"negative wind speed", record(testTime, "-0.1", testWindDir, "1", "0.5", "0.3", "100"), RejectValue},
		{"wind speed above 60", record(testTime, "60.01", testWindDir, "1", "0.5", "0.3", "100"), RejectValue},
		{"direction above 360", record(testTime, testVelocity, " 400", "1", "0.5", "0.3", "100"), RejectValue},
		{"negative direction", record(testTime, testVelocity, "-1", "1", "0.5", "0.3", "100"), RejectValue},
		{"zero u*", record(testTime, testVelocity, testWindDir, "1", "0.5", "0", "100"), RejectValue},
		{"negative u*", record(testTime, testVelocity, testWindDir, "1", "0.5", "-0.2", "100"), RejectValue},
		{"missing phi", record(testTime, testVelocity, testWindDir, "", "0.5", "0.3", "100"), RejectValue},
		{"text tke", record(testTime, testVelocity, testWindDir, "1", "n/a", "0.3", "100"), RejectValue},
		{"nan H0", record(testTime, testVelocity, testWindDir, "1", "0.5", "0.3", "NaN"), RejectValue},
		{"infinite H0", record(testTime, testVelocity, testWindDir, "1", "0.5", "0.3", "+Inf"), RejectValue},
	}

	p, err := NewParser(DefaultLayout)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, reason := p.Parse(tt.line)
			assert.Equal(t, tt.reason, reason)
			if reason != "" {
				assert.Equal(t, Observation{}, obs, "rejected lines must not leak partial values")
			}
		})
	}
}

func TestParser_RangeEdges(t *testing.T) {
	tests := []struct {
		name string
		vel  string
		dir  string
		ok   bool
	}{
		{"calm", "0", testWindDir, true},
		{"max speed", "60", testWindDir, true},
		{"north", testVelocity, "0", true},
		{"full circle", testVelocity, "360", true},
		{"just below full circle", testVelocity, "359.99", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseRecord(record(testTime, tt.vel, tt.dir, "1", "0.5", "0.3", "100"))
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseRecords(t *testing.T) {
	lines := []string{
		record("date", "vel", "dir", "phi", "tke", "u*", "H0"),
		validRecord("2024-01-01 00:10:00"),
		validRecord("2024-01-01 00:00:00"),
		validRecord("1970-01-01 00:00:00"),
		record("2024-01-01 00:20:00", testVelocity, " 400", "1", "0.5", "0.3", "100"),
		validRecord("2024-01-01 00:30:00"),
		"garbage",
	}

	ds := ParseRecords(lines)

	require.Equal(t, 3, ds.Len())
	assert.Equal(t, 4, ds.RejectedTotal())
	assert.Equal(t, map[RejectReason]int{
		RejectTimestamp: 2,
		RejectValue:     1,
		RejectFields:    1,
	}, ds.Rejected)

	// read order is kept, extremes are tracked independently of it
	assert.Equal(t, mustTime(t, "2024-01-01 00:10:00"), ds.Observations[0].Time)
	assert.Equal(t, mustTime(t, "2024-01-01 00:00:00"), ds.First)
	assert.Equal(t, mustTime(t, "2024-01-01 00:30:00"), ds.Last)
}

func TestParseRecords_OutOfRangeDropsExactlyOne(t *testing.T) {
	lines := series(mustTime(t, testTime), 10*time.Minute, 6)
	baseline := ParseRecords(lines)

	lines[3] = record(time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC).Format(TimeLayout),
		testVelocity, " 400", "1", "0.5", "0.3", "100")
	injected := ParseRecords(lines)

	assert.Equal(t, baseline.Len()-1, injected.Len())
}

func TestRecordLayout_Validate(t *testing.T) {
	require.NoError(t, DefaultLayout.Validate())
	assert.Equal(t, 25, DefaultLayout.width())

	dup := DefaultLayout
	dup.HeatFlux = dup.WindSpeed
	err := dup.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayout))

	neg := DefaultLayout
	neg.TKE = -1
	_, err = NewParser(neg)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestNewParser_CustomLayout(t *testing.T) {
	layout := RecordLayout{Timestamp: 0, WindSpeed: 1, WindDirection: 2, Stability: 3, TKE: 4, FrictionVelocity: 5, HeatFlux: 6}
	p, err := NewParser(layout)
	require.NoError(t, err)

	obs, reason := p.Parse("2024-06-01 12:00:00,3.5,180,0.1,0.8,0.4,-20")
	require.Empty(t, reason)
	assert.Equal(t, 180, obs.WindDirection)
	assert.Equal(t, -20.0, obs.HeatFlux)
}
