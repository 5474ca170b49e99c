package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/couchcryptid/sonic-site-check/internal/observability"
)

// LineExtractor reads the raw data lines of a combined yearly file.
type LineExtractor interface {
	ExtractLines(ctx context.Context) ([]string, error)
}

// Analyzer turns parsed lines into a site report.
type Analyzer interface {
	Parse(lines []string) domain.Dataset
	Analyze(ctx context.Context, ds domain.Dataset) (domain.SiteReport, error)
}

// ReportLoader delivers a finished report to one destination.
type ReportLoader interface {
	Name() string
	LoadReport(ctx context.Context, report domain.SiteReport) error
}

// Pipeline orchestrates one extract-analyze-load run.
type Pipeline struct {
	extractor LineExtractor
	analyzer  Analyzer
	loaders   []ReportLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	latest    atomic.Pointer[domain.SiteReport]
}

// New creates a Pipeline with the given stages and observability.
func New(e LineExtractor, a Analyzer, loaders []ReportLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		analyzer:  a,
		loaders:   loaders,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a report has been produced.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.latest.Load() == nil {
		return errors.New("no report has been produced yet")
	}
	return nil
}

// Latest returns the most recent report, if any.
func (p *Pipeline) Latest() (domain.SiteReport, bool) {
	r := p.latest.Load()
	if r == nil {
		return domain.SiteReport{}, false
	}
	return *r, true
}

// Run reads, checks and publishes one dataset. Dataset-level failures (no
// data, no averaging time) abort the run; loader failures are logged and
// returned together after every loader had its turn.
func (p *Pipeline) Run(ctx context.Context) (domain.SiteReport, error) {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	start := time.Now()

	lines, err := p.extractor.ExtractLines(ctx)
	if err != nil {
		return domain.SiteReport{}, fmt.Errorf("extract lines: %w", err)
	}
	p.metrics.RecordsRead.Add(float64(len(lines)))

	ds := p.analyzer.Parse(lines)
	p.metrics.RecordsAccepted.Add(float64(ds.Len()))
	for reason, n := range ds.Rejected {
		p.metrics.RecordsRejected.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.logger.Info("records parsed",
		"read", len(lines),
		"accepted", ds.Len(),
		"rejected", ds.RejectedTotal(),
	)

	report, err := p.analyzer.Analyze(ctx, ds)
	if err != nil {
		return domain.SiteReport{}, fmt.Errorf("analyze dataset: %w", err)
	}
	p.recordResults(report)
	p.latest.Store(&report)

	var errs []error
	for _, l := range p.loaders {
		if err := l.LoadReport(ctx, report); err != nil {
			p.logger.Error("load report failed", "sink", l.Name(), "error", err)
			p.metrics.ReportsPublished.WithLabelValues(l.Name(), "error").Inc()
			errs = append(errs, fmt.Errorf("%s: %w", l.Name(), err))
			continue
		}
		p.metrics.ReportsPublished.WithLabelValues(l.Name(), "success").Inc()
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	return report, errors.Join(errs...)
}

func (p *Pipeline) recordResults(r domain.SiteReport) {
	p.metrics.DataAvailability.Set(r.Timing.Availability)
	p.metrics.TimingGlitches.Set(float64(len(r.Timing.Glitches)))
	p.metrics.FluxOutliers.WithLabelValues("lower").Set(float64(r.Flux.LowerOutliers))
	p.metrics.FluxOutliers.WithLabelValues("upper").Set(float64(r.Flux.UpperOutliers))

	p.logger.Info("dataset analyzed",
		"site", r.Site,
		"year", r.Year,
		"interval_seconds", r.Timing.IntervalSeconds,
		"availability", r.Timing.Availability,
		"glitches", len(r.Timing.Glitches),
		"irregular", len(r.Timing.Irregular),
		"h0_outliers", r.Flux.LowerOutliers+r.Flux.UpperOutliers,
	)
}
