package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/couchcryptid/sonic-site-check/internal/observability"
)

// SiteAnalyzer implements Analyzer with the domain checks. The three
// analyzers read the same dataset and run concurrently.
type SiteAnalyzer struct {
	site    string
	bounds  domain.FluxBounds
	parser  *domain.Parser
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAnalyzer creates a SiteAnalyzer for the given site and censoring bounds.
func NewAnalyzer(site string, bounds domain.FluxBounds, logger *slog.Logger, metrics *observability.Metrics) (*SiteAnalyzer, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	parser, err := domain.NewParser(domain.DefaultLayout)
	if err != nil {
		return nil, err
	}
	return &SiteAnalyzer{
		site:    site,
		bounds:  bounds,
		parser:  parser,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Parse turns raw processed lines into a dataset, counting rejected lines.
func (a *SiteAnalyzer) Parse(lines []string) domain.Dataset {
	return a.parser.ParseAll(lines)
}

// Analyze runs the timing, directional and flux checks over ds concurrently.
func (a *SiteAnalyzer) Analyze(ctx context.Context, ds domain.Dataset) (domain.SiteReport, error) {
	if ds.Len() == 0 {
		return domain.SiteReport{}, domain.ErrEmptyDataset
	}
	if err := ctx.Err(); err != nil {
		return domain.SiteReport{}, err
	}

	report := domain.NewSiteReport(a.site, ds)
	var (
		wg                 sync.WaitGroup
		timingErr, fluxErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		defer a.observe("timing", time.Now())
		report.Timing, timingErr = domain.AnalyzeTiming(ds)
	}()
	go func() {
		defer wg.Done()
		defer a.observe("directions", time.Now())
		report.Directions = domain.AnalyzeDirections(ds)
	}()
	go func() {
		defer wg.Done()
		defer a.observe("flux", time.Now())
		report.Flux, fluxErr = domain.AggregateFlux(ds, a.bounds)
	}()
	wg.Wait()

	if err := errors.Join(timingErr, fluxErr); err != nil {
		return domain.SiteReport{}, err
	}
	return report, nil
}

func (a *SiteAnalyzer) observe(analyzer string, start time.Time) {
	elapsed := time.Since(start)
	a.metrics.AnalysisDuration.WithLabelValues(analyzer).Observe(elapsed.Seconds())
	a.logger.Debug("analyzer finished", "analyzer", analyzer, "duration", elapsed)
}
