package domain

import (
	"fmt"
	"time"
)

// NoData marks a statistic with no supporting observations.
const NoData = -9999.9

// Observation is one accepted averaging block. All seven fields are always set.
type Observation struct {
	Time             time.Time `json:"time" yaml:"time"`
	WindSpeed        float64   `json:"wind_speed" yaml:"wind_speed"`         // m/s, [0, 60]
	WindDirection    int       `json:"wind_direction" yaml:"wind_direction"` // degrees, truncated
	Stability        float64   `json:"stability" yaml:"stability"`           // z/L
	TKE              float64   `json:"tke" yaml:"tke"`                       // m²/s²
	FrictionVelocity float64   `json:"u_star" yaml:"u_star"`                 // m/s, > 0
	HeatFlux         float64   `json:"h0" yaml:"h0"`                         // W/m²
}

// RejectReason classifies why a line did not become an Observation.
type RejectReason string

const (
	RejectFields    RejectReason = "fields"    // too few columns
	RejectTimestamp RejectReason = "timestamp" // unparsable or not after the epoch
	RejectValue     RejectReason = "value"     // a numeric field missing or out of range
)

// RecordLayout maps each used quantity to its zero-based column.
type RecordLayout struct {
	Timestamp        int
	WindSpeed        int
	WindDirection    int
	Stability        int
	TKE              int
	FrictionVelocity int
	HeatFlux         int
}

// DefaultLayout is the column mapping of the station's processed files.
var DefaultLayout = RecordLayout{
	Timestamp:        0,
	WindSpeed:        3,
	WindDirection:    7,
	Stability:        11,
	TKE:              20,
	FrictionVelocity: 21,
	HeatFlux:         24,
}

func (l RecordLayout) columns() []int {
	return []int{l.Timestamp, l.WindSpeed, l.WindDirection, l.Stability, l.TKE, l.FrictionVelocity, l.HeatFlux}
}

// Validate checks that every column index is non-negative and used once.
func (l RecordLayout) Validate() error {
	seen := make(map[int]bool, 7)
	for _, c := range l.columns() {
		if c < 0 {
			return fmt.Errorf("%w: negative column %d", ErrInvalidLayout, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: column %d used twice", ErrInvalidLayout, c)
		}
		seen[c] = true
	}
	return nil
}

// width is the minimum number of fields a line needs.
func (l RecordLayout) width() int {
	w := 0
	for _, c := range l.columns() {
		if c+1 > w {
			w = c + 1
		}
	}
	return w
}

// Dataset is the parsed content of a combined file, in read order.
type Dataset struct {
	Observations []Observation
	Rejected     map[RejectReason]int
	First        time.Time // earliest accepted time stamp
	Last         time.Time // latest accepted time stamp
}

// Len returns the number of accepted observations.
func (d Dataset) Len() int { return len(d.Observations) }

// RejectedTotal returns the number of dropped lines across all reasons.
func (d Dataset) RejectedTotal() int {
	n := 0
	for _, c := range d.Rejected {
		n += c
	}
	return n
}

func (d *Dataset) add(o Observation) {
	if len(d.Observations) == 0 || o.Time.Before(d.First) {
		d.First = o.Time
	}
	if len(d.Observations) == 0 || o.Time.After(d.Last) {
		d.Last = o.Time
	}
	d.Observations = append(d.Observations, o)
}

func (d *Dataset) reject(r RejectReason) {
	if d.Rejected == nil {
		d.Rejected = make(map[RejectReason]int)
	}
	d.Rejected[r]++
}
