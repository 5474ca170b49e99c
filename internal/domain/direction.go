package domain

// Directions is the number of one-degree direction bins.
const Directions = 360

// DirectionalReport holds per-degree coverage and obstruction statistics.
type DirectionalReport struct {
	// Counts is the number of observations per direction bin.
	Counts [Directions]int `json:"counts" yaml:"counts"`

	// ObstructionIndex is 100·Σu*/n per bin. The wind speed takes no part in
	// it even though the index is reported as "u* over velocity"; the station
	// reports have always been computed this way.
	ObstructionIndex [Directions]float64 `json:"obstruction_index" yaml:"obstruction_index"`

	// SpeedRatio is the mean of 100·u*/U per bin over samples with U > 0.
	SpeedRatio [Directions]float64 `json:"speed_ratio" yaml:"speed_ratio"`

	// OutOfRange counts observations whose direction has no bin (360).
	OutOfRange int `json:"out_of_range" yaml:"out_of_range"`
}

// binAccumulator sums values per direction bin for one report.
type binAccumulator struct {
	sum [Directions]float64
	n   [Directions]int
}

func (a *binAccumulator) add(bin int, v float64) {
	a.sum[bin] += v
	a.n[bin]++
}

func (a *binAccumulator) scaledMeans(scale float64) [Directions]float64 {
	var out [Directions]float64
	for i := range out {
		if a.n[i] == 0 {
			out[i] = NoData
			continue
		}
		out[i] = scale * a.sum[i] / float64(a.n[i])
	}
	return out
}

// AnalyzeDirections bins ds by wind direction.
func AnalyzeDirections(ds Dataset) DirectionalReport {
	var (
		r     DirectionalReport
		ustar binAccumulator
		ratio binAccumulator
	)
	for _, o := range ds.Observations {
		dir := o.WindDirection
		if dir < 0 || dir >= Directions {
			r.OutOfRange++
			continue
		}
		r.Counts[dir]++
		if o.FrictionVelocity > 0 {
			ustar.add(dir, o.FrictionVelocity)
			if o.WindSpeed > 0 {
				ratio.add(dir, o.FrictionVelocity/o.WindSpeed)
			}
		}
	}
	r.ObstructionIndex = ustar.scaledMeans(100)
	r.SpeedRatio = ratio.scaledMeans(100)
	return r
}
