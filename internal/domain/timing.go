package domain

import (
	"fmt"
	"time"
)

const secondsPerDay = 86400.0

// Glitch is a pair of consecutive records whose time stamps do not advance.
type Glitch struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// TimingReport describes sampling regularity and data availability.
type TimingReport struct {
	IntervalSeconds int64       `json:"interval_seconds" yaml:"interval_seconds"`
	Monotonic       bool        `json:"monotonic" yaml:"monotonic"`
	Glitches        []Glitch    `json:"glitches" yaml:"glitches"`
	Regular         bool        `json:"regular" yaml:"regular"`
	Irregular       []time.Time `json:"irregular" yaml:"irregular"`
	First           time.Time   `json:"first" yaml:"first"`
	Last            time.Time   `json:"last" yaml:"last"`
	SpanDays        float64     `json:"span_days" yaml:"span_days"`
	Availability    float64     `json:"availability_percent" yaml:"availability_percent"`
}

// AnalyzeTiming infers the averaging time of ds and checks its time stamps.
//
// Gaps are taken in read order. The last gap of the series takes no part in
// any check, matching the station's historical reports. Availability is not
// clamped: duplicated records can push it above 100%.
func AnalyzeTiming(ds Dataset) (TimingReport, error) {
	n := ds.Len()
	if n == 0 {
		return TimingReport{}, ErrEmptyDataset
	}

	gaps := make([]int64, 0, n)
	for i := 0; i+1 < n; i++ {
		// Whole seconds; time.Duration saturates after about 292 years.
		gaps = append(gaps, ds.Observations[i+1].Time.Unix()-ds.Observations[i].Time.Unix())
	}
	examined := len(gaps) - 1

	var interval int64
	for i := 0; i < examined; i++ {
		if gaps[i] > 0 && (interval == 0 || gaps[i] < interval) {
			interval = gaps[i]
		}
	}
	if interval == 0 {
		return TimingReport{}, fmt.Errorf("%w: %d observations, no positive gap", ErrUndefinedInterval, n)
	}

	r := TimingReport{
		IntervalSeconds: interval,
		Monotonic:       true,
		Regular:         true,
		First:           ds.First,
		Last:            ds.Last,
	}
	for i := 0; i < examined; i++ {
		if gaps[i] <= 0 {
			r.Monotonic = false
			r.Glitches = append(r.Glitches, Glitch{From: ds.Observations[i].Time, To: ds.Observations[i+1].Time})
		}
		if gaps[i]%interval != 0 {
			r.Regular = false
			r.Irregular = append(r.Irregular, ds.Observations[i].Time)
		}
	}

	r.SpanDays = (float64(ds.Last.Unix()-ds.First.Unix()) + float64(interval)) / secondsPerDay
	r.Availability = 100.0 * float64(n) * float64(interval) / (r.SpanDays * secondsPerDay)
	return r, nil
}
