package file

import (
	"bufio"
	"fmt"
	"io"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"gopkg.in/yaml.v3"
)

// The layouts below are the ones the station's maintenance reports have
// always used; downstream spreadsheets depend on them.

const stampLayout = domain.TimeLayout

// WriteBlindSpots writes the per-degree observation counts.
func WriteBlindSpots(w io.Writer, r domain.DirectionalReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Dir, Nr\n")
	for i, n := range r.Counts {
		fmt.Fprintf(bw, "%3d, %d\n", i, n)
	}
	return bw.Flush()
}

// WriteObstructionIndex writes the per-degree friction velocity index.
func WriteObstructionIndex(w io.Writer, r domain.DirectionalReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Dir, Ustar_over_Vel\n")
	for i, v := range r.ObstructionIndex {
		fmt.Fprintf(bw, "%3d, %6.2f\n", i, v)
	}
	return bw.Flush()
}

// WriteAvailability writes the timing and availability report.
func WriteAvailability(w io.Writer, r domain.SiteReport) error {
	t := r.Timing
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# Basic data timing properties\n\n")
	fmt.Fprintf(bw, "Averaging time, as inferred from data: %d seconds\n\n", t.IntervalSeconds)
	if t.Monotonic {
		fmt.Fprint(bw, "Data set is time-monotonic, as expected\n\n")
	} else {
		fmt.Fprintf(bw, "Data set is not time-monotonic, with %d negative or null runs\n\n", len(t.Glitches))
	}
	if t.Regular {
		fmt.Fprint(bw, "Data set is time-regular, as expected\n\n")
	} else {
		fmt.Fprintf(bw, "Data set is not time-regular, with %d times not exact multiples of averaging time\n\n", len(t.Irregular))
	}

	fmt.Fprint(bw, "# Overall availability\n\n")
	fmt.Fprintf(bw, "Data set time span: %6.2f days\n\n", t.SpanDays)
	fmt.Fprintf(bw, "- Overall: %s - %s\n\n", t.First.Format(stampLayout), t.Last.Format(stampLayout))
	fmt.Fprintf(bw, "Data availability: %8.4f percent\n\n", t.Availability)

	if len(t.Glitches) > 0 {
		fmt.Fprint(bw, "# Date and time glitches\n\n")
		fmt.Fprint(bw, "From, To\n")
		for _, g := range t.Glitches {
			fmt.Fprintf(bw, "%s, %s\n", g.From.Format(stampLayout), g.To.Format(stampLayout))
		}
		fmt.Fprint(bw, "\n")
	}
	if len(t.Irregular) > 0 {
		fmt.Fprint(bw, "# Time stamps not multiple of the averaging time\n\n")
		fmt.Fprint(bw, "Time\n")
		for _, ts := range t.Irregular {
			fmt.Fprintf(bw, "%s\n", ts.Format(stampLayout))
		}
		fmt.Fprint(bw, "\n")
	}

	fmt.Fprint(bw, "# Records\n\n")
	fmt.Fprintf(bw, "- Accepted: %d\n", r.Accepted)
	for _, reason := range []domain.RejectReason{domain.RejectFields, domain.RejectTimestamp, domain.RejectValue} {
		fmt.Fprintf(bw, "- Rejected (%s): %d\n", reason, r.Rejected[reason])
	}
	fmt.Fprint(bw, "\n")

	return bw.Flush()
}

// WriteHeatFlux writes the H0 statistics and the monthly table.
func WriteHeatFlux(w io.Writer, r domain.FluxReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# H0 energy flow\n\n")
	fmt.Fprintf(bw, "- Total balance expressed as mean, outliers included: %8.2f W/m2\n", r.OverallMean)
	fmt.Fprintf(bw, "- Total balance expressed as mean, outliers excluded: %8.2f W/m2\n\n", r.CensoredMean)

	fmt.Fprint(bw, "# Outliers\n\n")
	fmt.Fprintf(bw, "- Below %g W/m2: %d\n", r.Bounds.Lower, r.LowerOutliers)
	fmt.Fprintf(bw, "- Above %g W/m2: %d\n\n", r.Bounds.Upper, r.UpperOutliers)

	fmt.Fprint(bw, "# Monthly balances\n\n")
	fmt.Fprint(bw, "Month, Negative_Mean, Positive_Mean, Total_Mean\n")
	for _, m := range r.Monthly {
		fmt.Fprintf(bw, "%2d, %9.3f, %9.3f, %9.3f\n", int(m.Month), m.NegativeMean, m.PositiveMean, m.TotalMean)
	}
	fmt.Fprint(bw, "\n")

	return bw.Flush()
}

// WriteSummary writes the whole report as YAML.
func WriteSummary(w io.Writer, r domain.SiteReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}
