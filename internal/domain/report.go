package domain

import "time"

// SiteReport bundles every check run over one site's yearly dataset.
type SiteReport struct {
	Site        string               `json:"site" yaml:"site"`
	Year        int                  `json:"year" yaml:"year"`
	GeneratedAt time.Time            `json:"generated_at" yaml:"generated_at"`
	Accepted    int                  `json:"accepted" yaml:"accepted"`
	Rejected    map[RejectReason]int `json:"rejected" yaml:"rejected"`
	Timing      TimingReport         `json:"timing" yaml:"timing"`
	Directions  DirectionalReport    `json:"directions" yaml:"directions"`
	Flux        FluxReport           `json:"flux" yaml:"flux"`
}

// NewSiteReport starts a report for ds. The year is the one of the earliest
// accepted record.
func NewSiteReport(site string, ds Dataset) SiteReport {
	r := SiteReport{
		Site:        site,
		GeneratedAt: clock.Now().UTC(),
		Accepted:    ds.Len(),
		Rejected:    ds.Rejected,
	}
	if !ds.First.IsZero() {
		r.Year = ds.First.Year()
	}
	return r
}

// RejectedTotal returns the number of dropped lines across all reasons.
func (r SiteReport) RejectedTotal() int {
	n := 0
	for _, c := range r.Rejected {
		n += c
	}
	return n
}
