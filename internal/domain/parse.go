package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the time stamp format of the processed files.
const TimeLayout = "2006-01-02 15:04:05"

const (
	maxWindSpeed     = 60.0
	maxWindDirection = 360.0
)

// epoch is what the logger writes for a missing time stamp.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// field is the outcome of reading one numeric column.
type field struct {
	value float64
	ok    bool
}

type check func(float64) bool

func inRange(lo, hi float64) check {
	return func(v float64) bool { return v >= lo && v <= hi }
}

func positive(v float64) bool { return v > 0 }

// parseField reads a number, tolerating surrounding blanks. Non-finite values
// and values failing the optional check are reported as missing.
func parseField(s string, valid check) field {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return field{}
	}
	if valid != nil && !valid(v) {
		return field{}
	}
	return field{value: v, ok: true}
}

// allPresent reports whether every field was read successfully.
func allPresent(fields ...field) bool {
	for _, f := range fields {
		if !f.ok {
			return false
		}
	}
	return true
}

// Parser turns raw lines into observations according to a RecordLayout.
type Parser struct {
	layout RecordLayout
	width  int
}

// NewParser validates the layout once and returns a parser bound to it.
func NewParser(layout RecordLayout) (*Parser, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Parser{layout: layout, width: layout.width()}, nil
}

var defaultParser = &Parser{layout: DefaultLayout, width: DefaultLayout.width()}

// ParseRecord parses a line with DefaultLayout.
func ParseRecord(line string) (Observation, bool) {
	o, reason := defaultParser.Parse(line)
	return o, reason == ""
}

// ParseRecords parses every line with DefaultLayout.
func ParseRecords(lines []string) Dataset {
	return defaultParser.ParseAll(lines)
}

// Parse converts one line. On rejection the reason is non-empty and the
// returned Observation is the zero value.
func (p *Parser) Parse(line string) (Observation, RejectReason) {
	blocks := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(blocks) < p.width {
		return Observation{}, RejectFields
	}

	ts, err := time.Parse(TimeLayout, strings.TrimSpace(blocks[p.layout.Timestamp]))
	if err != nil || !ts.After(epoch) {
		return Observation{}, RejectTimestamp
	}

	vel := parseField(blocks[p.layout.WindSpeed], inRange(0, maxWindSpeed))
	dir := parseField(blocks[p.layout.WindDirection], inRange(0, maxWindDirection))
	phi := parseField(blocks[p.layout.Stability], nil)
	tke := parseField(blocks[p.layout.TKE], nil)
	ustar := parseField(blocks[p.layout.FrictionVelocity], positive)
	h0 := parseField(blocks[p.layout.HeatFlux], nil)

	if !allPresent(vel, dir, phi, tke, ustar, h0) {
		return Observation{}, RejectValue
	}

	return Observation{
		Time:             ts,
		WindSpeed:        vel.value,
		WindDirection:    int(dir.value),
		Stability:        phi.value,
		TKE:              tke.value,
		FrictionVelocity: ustar.value,
		HeatFlux:         h0.value,
	}, ""
}

// ParseAll parses lines in order, keeping accepted observations and
// counting rejections by reason.
func (p *Parser) ParseAll(lines []string) Dataset {
	ds := Dataset{
		Observations: make([]Observation, 0, len(lines)),
		Rejected:     make(map[RejectReason]int),
	}
	for _, line := range lines {
		o, reason := p.Parse(line)
		if reason != "" {
			ds.reject(reason)
			continue
		}
		ds.add(o)
	}
	return ds
}
