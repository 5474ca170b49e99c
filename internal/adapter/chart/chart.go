// Package chart renders a site report as a self-contained HTML page of
// go-echarts charts.
package chart

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
)

// SuffixCharts is appended to the report prefix.
const SuffixCharts = "_Charts.html"

const (
	chartWidth  = "1100px"
	chartHeight = "420px"

	// missing is the ECharts placeholder for an absent point.
	missing = "-"
)

// Renderer writes <prefix>_Charts.html. It implements pipeline.ReportLoader.
type Renderer struct {
	prefix string
	logger *slog.Logger
}

// NewRenderer creates a chart renderer for the given output prefix.
func NewRenderer(prefix string, logger *slog.Logger) *Renderer {
	return &Renderer{prefix: prefix, logger: logger}
}

// Name identifies the sink in logs and metric labels.
func (r *Renderer) Name() string { return "charts" }

// LoadReport renders the directional and flux charts of report to one HTML page.
func (r *Renderer) LoadReport(_ context.Context, report domain.SiteReport) (err error) {
	path := r.prefix + SuffixCharts
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Render(f, report); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	r.logger.Info("charts written", "path", path)
	return nil
}

// Render writes the chart page for report to w.
func Render(w io.Writer, report domain.SiteReport) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s %d site check", report.Site, report.Year)
	page.AddCharts(
		blindSpotsChart(report.Directions),
		obstructionChart(report.Directions),
		monthlyFluxChart(report.Flux),
	)
	return page.Render(w)
}

func degreeLabels() []string {
	labels := make([]string, domain.Directions)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

func globalOpts(title, subtitle, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	}
}

func blindSpotsChart(d domain.DirectionalReport) *charts.Bar {
	data := make([]opts.BarData, len(d.Counts))
	for i, n := range d.Counts {
		data[i] = opts.BarData{Value: n}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts("Blind spots", "Observations per degree of provenance", "Direction (°)", "Count")...)
	bar.SetXAxis(degreeLabels()).AddSeries("Observations", data)
	return bar
}

func obstructionChart(d domain.DirectionalReport) *charts.Line {
	index := make([]opts.LineData, len(d.ObstructionIndex))
	ratio := make([]opts.LineData, len(d.SpeedRatio))
	for i := range d.ObstructionIndex {
		index[i] = lineValue(d.ObstructionIndex[i])
		ratio[i] = lineValue(d.SpeedRatio[i])
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts("Obstruction index", "Friction velocity by direction", "Direction (°)", "Index")...)
	line.SetXAxis(degreeLabels()).
		AddSeries("100·u*", index).
		AddSeries("100·u*/U", ratio)
	return line
}

func monthlyFluxChart(f domain.FluxReport) *charts.Bar {
	labels := make([]string, len(f.Monthly))
	negative := make([]opts.BarData, len(f.Monthly))
	positive := make([]opts.BarData, len(f.Monthly))
	for i, m := range f.Monthly {
		labels[i] = m.Month.String()[:3]
		negative[i] = barValue(m.NegativeMean)
		positive[i] = barValue(m.PositiveMean)
	}

	subtitle := fmt.Sprintf("Censored to [%g, %g] W/m², mean %.2f W/m²", f.Bounds.Lower, f.Bounds.Upper, f.CensoredMean)
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts("Monthly H0 balance", subtitle, "Month", "W/m²")...)
	bar.SetXAxis(labels).
		AddSeries("Negative", negative, charts.WithBarChartOpts(opts.BarChart{Stack: "h0"})).
		AddSeries("Positive", positive, charts.WithBarChartOpts(opts.BarChart{Stack: "h0"}))
	return bar
}

func lineValue(v float64) opts.LineData {
	if v == domain.NoData {
		return opts.LineData{Value: missing}
	}
	return opts.LineData{Value: v}
}

func barValue(v float64) opts.BarData {
	if v == domain.NoData {
		return opts.BarData{Value: missing}
	}
	return opts.BarData{Value: v}
}
