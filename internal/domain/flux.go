package domain

import (
	"fmt"
	"time"
)

// FluxBounds is the closed interval of physically plausible H0 values (W/m²).
type FluxBounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// DefaultFluxBounds are the censoring limits used by the station reports.
var DefaultFluxBounds = FluxBounds{Lower: -200, Upper: 1600}

// Validate rejects empty intervals.
func (b FluxBounds) Validate() error {
	if !(b.Lower < b.Upper) {
		return fmt.Errorf("%w: lower %g must be below upper %g", ErrInvalidBounds, b.Lower, b.Upper)
	}
	return nil
}

func (b FluxBounds) contains(h0 float64) bool { return h0 >= b.Lower && h0 <= b.Upper }

// MonthlyFlux splits a month's censored H0 into negative and positive parts.
// Both parts are divided by the month's full count, so they add up to the
// monthly mean.
type MonthlyFlux struct {
	Month        time.Month `json:"month" yaml:"month"`
	Count        int        `json:"count" yaml:"count"`
	NegativeMean float64    `json:"negative_mean" yaml:"negative_mean"`
	PositiveMean float64    `json:"positive_mean" yaml:"positive_mean"`
	TotalMean    float64    `json:"total_mean" yaml:"total_mean"`
}

// FluxReport summarizes sensible heat flux over a dataset.
type FluxReport struct {
	Bounds        FluxBounds      `json:"bounds" yaml:"bounds"`
	Total         int             `json:"total" yaml:"total"`
	Censored      int             `json:"censored" yaml:"censored"`
	LowerOutliers int             `json:"lower_outliers" yaml:"lower_outliers"`
	UpperOutliers int             `json:"upper_outliers" yaml:"upper_outliers"`
	OverallMean   float64         `json:"overall_mean" yaml:"overall_mean"`
	CensoredMean  float64         `json:"censored_mean" yaml:"censored_mean"`
	Monthly       [12]MonthlyFlux `json:"monthly" yaml:"monthly"`
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() float64 {
	if m.n == 0 {
		return NoData
	}
	return m.sum / float64(m.n)
}

// fluxAccumulator gathers the running sums of a single FluxReport.
type fluxAccumulator struct {
	bounds   FluxBounds
	overall  mean
	censored mean
	lower    int
	upper    int
	negative [12]mean
	positive [12]mean
}

func (a *fluxAccumulator) add(t time.Time, h0 float64) {
	a.overall.add(h0)
	if h0 < a.bounds.Lower {
		a.lower++
	}
	if h0 > a.bounds.Upper {
		a.upper++
	}
	if !a.bounds.contains(h0) {
		return
	}
	a.censored.add(h0)
	m := int(t.Month()) - 1
	if h0 >= 0 {
		a.positive[m].add(h0)
	} else {
		a.negative[m].add(h0)
	}
}

func (a *fluxAccumulator) report() FluxReport {
	r := FluxReport{
		Bounds:        a.bounds,
		Total:         a.overall.n,
		Censored:      a.censored.n,
		LowerOutliers: a.lower,
		UpperOutliers: a.upper,
		OverallMean:   a.overall.value(),
		CensoredMean:  a.censored.value(),
	}
	for i := range r.Monthly {
		mf := MonthlyFlux{Month: time.Month(i + 1), Count: a.negative[i].n + a.positive[i].n}
		if mf.Count == 0 {
			mf.NegativeMean, mf.PositiveMean, mf.TotalMean = NoData, NoData, NoData
		} else {
			mf.NegativeMean = a.negative[i].sum / float64(mf.Count)
			mf.PositiveMean = a.positive[i].sum / float64(mf.Count)
			mf.TotalMean = mf.NegativeMean + mf.PositiveMean
		}
		r.Monthly[i] = mf
	}
	return r
}

// AggregateFlux computes overall, censored and monthly H0 statistics.
func AggregateFlux(ds Dataset, bounds FluxBounds) (FluxReport, error) {
	if err := bounds.Validate(); err != nil {
		return FluxReport{}, err
	}
	if ds.Len() == 0 {
		return FluxReport{}, ErrEmptyDataset
	}
	acc := fluxAccumulator{bounds: bounds}
	for _, o := range ds.Observations {
		acc.add(o.Time, o.HeatFlux)
	}
	return acc.report(), nil
}
