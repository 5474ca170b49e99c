package main

import (
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// minAvailability is the percentage below which availability is flagged.
const minAvailability = 90.0

// printSummary writes a console overview of r followed by one status line
// per check.
func printSummary(w io.Writer, r domain.SiteReport) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(fmt.Sprintf("%s %d", r.Site, r.Year))
	tbl.AppendHeader(table.Row{"Check", "Value"})

	tbl.AppendRows([]table.Row{
		{"Records accepted", humanize.Comma(int64(r.Accepted))},
		{"Records rejected", humanize.Comma(int64(r.RejectedTotal()))},
		{"Averaging time", (time.Duration(r.Timing.IntervalSeconds) * time.Second).String()},
		{"Time span", fmt.Sprintf("%.2f days", r.Timing.SpanDays)},
		{"Availability", fmt.Sprintf("%.2f%%", r.Timing.Availability)},
		{"Time glitches", len(r.Timing.Glitches)},
		{"Irregular stamps", len(r.Timing.Irregular)},
		{"Blind directions", blindDirections(r.Directions)},
	})
	tbl.AppendSeparator()
	tbl.AppendRows([]table.Row{
		{"H0 mean (all)", fmt.Sprintf("%.2f W/m²", r.Flux.OverallMean)},
		{"H0 mean (censored)", fmt.Sprintf("%.2f W/m²", r.Flux.CensoredMean)},
		{"H0 outliers", fmt.Sprintf("%d low, %d high", r.Flux.LowerOutliers, r.Flux.UpperOutliers)},
	})
	tbl.Render()

	status(w, r.Timing.Monotonic, "time stamps monotonic", fmt.Sprintf("%d glitches", len(r.Timing.Glitches)))
	status(w, r.Timing.Regular, "time stamps regular", fmt.Sprintf("%d off-grid stamps", len(r.Timing.Irregular)))
	status(w, r.Timing.Availability >= minAvailability, "data availability",
		fmt.Sprintf("%.2f%% below %.0f%%", r.Timing.Availability, minAvailability))
	status(w, r.Flux.LowerOutliers+r.Flux.UpperOutliers == 0, "H0 within bounds",
		fmt.Sprintf("%d outliers", r.Flux.LowerOutliers+r.Flux.UpperOutliers))
}

func status(w io.Writer, ok bool, check, detail string) {
	if ok {
		color.New(color.FgGreen).Fprintf(w, "PASS  %s\n", check)
		return
	}
	color.New(color.FgYellow).Fprintf(w, "WARN  %s: %s\n", check, detail)
}

// blindDirections counts the degrees with no observation at all.
func blindDirections(d domain.DirectionalReport) int {
	n := 0
	for _, c := range d.Counts {
		if c == 0 {
			n++
		}
	}
	return n
}
