// Command genmock writes a synthetic year of ten-minute processed sonic
// anemometer records, for demos and fixtures. The data set carries the
// defects sitecheck looks for: malformed lines, repeated time stamps, heat
// flux outliers and an obstructed direction sector.
//
// Usage:
//
//	go run ./cmd/genmock -year 2024 -out data/mock/2024_processed.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	"github.com/dustin/go-humanize"
)

const (
	step = 10 * time.Minute

	header = "date, U, V, Vel, W, T, Vel_Std, Dir, Dir_Std, T_Std, Zeta_Std, Phi, Ustar_ft, TKE_ft, H0_ft, " +
		"Cov_UV, Cov_UW, Cov_VW, Cov_UT, Cov_VT, TKE, Ustar, Cov_WT, L, H0"
	columns = 25

	// Records inside the sector never occur, as if a mast shadowed it.
	blindFrom = 300
	blindTo   = 330

	malformedEvery = 5000
	repeatEvery    = 7000
	outlierEvery   = 3000
)

type stats struct {
	records   int
	malformed int
	repeated  int
	outliers  int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	year := flag.Int("year", time.Now().Year()-1, "year to generate")
	out := flag.String("out", "", "output path for the processed CSV")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewPCG(*seed, uint64(*year)))
	st, err := generate(f, *year, rng)
	if err != nil {
		return fmt.Errorf("generate %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("wrote %s records to %s (%d malformed, %d repeated stamps, %d H0 outliers)",
		humanize.Comma(int64(st.records)), *out, st.malformed, st.repeated, st.outliers)
	return nil
}

// generate writes the header and one record every ten minutes of year.
func generate(w io.Writer, year int, rng *rand.Rand) (stats, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return stats{}, err
	}

	var (
		st    stats
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end   = start.AddDate(1, 0, 0)
		i     int
	)
	for t := start; t.Before(end); t = t.Add(step) {
		i++
		stamp := t
		if i%repeatEvery == 0 {
			stamp = t.Add(-step)
			st.repeated++
		}
		rec := sample(stamp, rng)
		if i%outlierEvery == 0 {
			rec.HeatFlux = 2500
			if rng.IntN(2) == 0 {
				rec.HeatFlux = -450
			}
			st.outliers++
		}

		line := formatRecord(rec)
		if i%malformedEvery == 0 {
			// Logger reboot: the line is cut short.
			line = line[:len(line)/2]
			st.malformed++
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return st, err
		}
		st.records++
	}
	return st, bw.Flush()
}

// sample draws a plausible observation for t with a diurnal cycle.
func sample(t time.Time, rng *rand.Rand) domain.Observation {
	hour := float64(t.Hour()) + float64(t.Minute())/60
	sun := math.Max(0, math.Sin((hour-6)/12*math.Pi))
	season := 0.6 + 0.4*math.Sin(float64(t.YearDay()-80)/365*2*math.Pi)

	vel := 0.4 + 2.5*sun + 3*rng.Float64()
	dir := int(rng.NormFloat64()*70+220+360) % 360
	if dir >= blindFrom && dir < blindTo {
		dir = (dir + blindTo - blindFrom) % 360
	}
	ustar := 0.08 * vel * (0.8 + 0.4*rng.Float64())
	h0 := 320*sun*season - 25 + 20*rng.NormFloat64()

	return domain.Observation{
		Time:             t,
		WindSpeed:        vel,
		WindDirection:    dir,
		Stability:        -1.5*sun + 0.3 + 0.2*rng.NormFloat64(),
		TKE:              2.5 * ustar * ustar * (1 + rng.Float64()),
		FrictionVelocity: ustar,
		HeatFlux:         h0,
	}
}

// formatRecord renders o in the processed file layout, filling the columns
// sitecheck ignores with zeros.
func formatRecord(o domain.Observation) string {
	fields := make([]string, columns)
	for i := range fields {
		fields[i] = "0.000"
	}
	layout := domain.DefaultLayout
	fields[layout.Timestamp] = o.Time.Format(domain.TimeLayout)
	fields[layout.WindSpeed] = fmt.Sprintf("%.2f", o.WindSpeed)
	fields[layout.WindDirection] = fmt.Sprintf("%.1f", float64(o.WindDirection)+0.5)
	fields[layout.Stability] = fmt.Sprintf("%.3f", o.Stability)
	fields[layout.TKE] = fmt.Sprintf("%.3f", o.TKE)
	fields[layout.FrictionVelocity] = fmt.Sprintf("%.3f", o.FrictionVelocity)
	fields[layout.HeatFlux] = fmt.Sprintf("%.1f", o.HeatFlux)
	return strings.Join(fields, ",")
}
