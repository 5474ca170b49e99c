package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateFlux_Outliers(t *testing.T) {
	ds := fluxDataset(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), -300, -100, 50, 1700, 200)

	r, err := AggregateFlux(ds, DefaultFluxBounds)
	require.NoError(t, err)

	assert.Equal(t, 1, r.LowerOutliers)
	assert.Equal(t, 1, r.UpperOutliers)
	assert.Equal(t, 3, r.Censored)
	assert.Equal(t, 5, r.Total)
	assert.InDelta(t, 50.0, r.CensoredMean, 1e-9)
	assert.InDelta(t, 310.0, r.OverallMean, 1e-9)
}

func TestAggregateFlux_BoundsAreInclusive(t *testing.T) {
	ds := fluxDataset(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), -200, 1600)

	r, err := AggregateFlux(ds, DefaultFluxBounds)
	require.NoError(t, err)

	assert.Zero(t, r.LowerOutliers)
	assert.Zero(t, r.UpperOutliers)
	assert.Equal(t, 2, r.Censored)
}

func TestAggregateFlux_CountsAddUp(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ts := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 20; trial++ {
		h0s := make([]float64, 50+rng.Intn(50))
		for i := range h0s {
			h0s[i] = rng.Float64()*2400 - 500
		}

		r, err := AggregateFlux(fluxDataset(ts, h0s...), DefaultFluxBounds)
		require.NoError(t, err)
		assert.Equal(t, r.Total, r.LowerOutliers+r.UpperOutliers+r.Censored)
	}
}

func TestAggregateFlux_Monthly(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	var ds Dataset
	for _, o := range []Observation{
		{Time: jan, HeatFlux: -40},
		{Time: jan, HeatFlux: 100},
		{Time: jan, HeatFlux: 0},
		{Time: jan, HeatFlux: -20},
		{Time: jan, HeatFlux: -500}, // outlier, not in the monthly table
		{Time: mar, HeatFlux: 1700}, // outlier only: March stays empty
	} {
		ds.add(o)
	}

	r, err := AggregateFlux(ds, DefaultFluxBounds)
	require.NoError(t, err)

	january := r.Monthly[0]
	assert.Equal(t, time.January, january.Month)
	assert.Equal(t, 4, january.Count)
	assert.InDelta(t, -15.0, january.NegativeMean, 1e-9) // -60 / 4
	assert.InDelta(t, 25.0, january.PositiveMean, 1e-9)  // 100 / 4, zero counts as positive
	assert.InDelta(t, 10.0, january.TotalMean, 1e-9)

	for _, m := range r.Monthly[1:] {
		assert.Zero(t, m.Count, m.Month.String())
		assert.Equal(t, NoData, m.NegativeMean)
		assert.Equal(t, NoData, m.PositiveMean)
		assert.Equal(t, NoData, m.TotalMean)
	}
}

func TestAggregateFlux_AllOutliers(t *testing.T) {
	ds := fluxDataset(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), -900, 2000)

	r, err := AggregateFlux(ds, DefaultFluxBounds)
	require.NoError(t, err)

	assert.Equal(t, NoData, r.CensoredMean)
	assert.InDelta(t, 550.0, r.OverallMean, 1e-9)
}

func TestAggregateFlux_Errors(t *testing.T) {
	_, err := AggregateFlux(Dataset{}, DefaultFluxBounds)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	ds := fluxDataset(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 10)
	_, err = AggregateFlux(ds, FluxBounds{Lower: 10, Upper: 10})
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestAggregateFlux_CustomBounds(t *testing.T) {
	ds := fluxDataset(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), -60, 0, 60)

	r, err := AggregateFlux(ds, FluxBounds{Lower: -50, Upper: 50})
	require.NoError(t, err)

	assert.Equal(t, 1, r.LowerOutliers)
	assert.Equal(t, 1, r.UpperOutliers)
	assert.Equal(t, FluxBounds{Lower: -50, Upper: 50}, r.Bounds)
}
