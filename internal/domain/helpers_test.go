package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testTime     = "2024-01-01 00:00:00"
	testWindDir  = "90"
	testVelocity = "5"
)

// record builds a 25-column processed line with the used columns filled in
// and zeros everywhere else.
func record(ts, vel, dir, phi, tke, ustar, h0 string) string {
	cols := make([]string, 25)
	for i := range cols {
		cols[i] = "0.0"
	}
	cols[0] = ts
	cols[3] = vel
	cols[7] = dir
	cols[11] = phi
	cols[20] = tke
	cols[21] = ustar
	cols[24] = h0
	return strings.Join(cols, ",")
}

func validRecord(ts string) string {
	return record(ts, testVelocity, testWindDir, "1", "0.5", "0.3", "100")
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(TimeLayout, s)
	require.NoError(t, err)
	return ts
}

// series returns n valid records starting at start and spaced by step.
func series(start time.Time, step time.Duration, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = validRecord(start.Add(time.Duration(i) * step).Format(TimeLayout))
	}
	return lines
}

// datasetAt builds a dataset directly from time stamps, in the given order.
func datasetAt(times ...time.Time) Dataset {
	var ds Dataset
	for _, ts := range times {
		ds.add(Observation{Time: ts, WindSpeed: 5, WindDirection: 90, FrictionVelocity: 0.3, HeatFlux: 100})
	}
	return ds
}

// fluxDataset builds a dataset of H0 values, all stamped at ts.
func fluxDataset(ts time.Time, h0s ...float64) Dataset {
	var ds Dataset
	for _, h0 := range h0s {
		ds.add(Observation{Time: ts, WindSpeed: 5, WindDirection: 90, FrictionVelocity: 0.3, HeatFlux: h0})
	}
	return ds
}
