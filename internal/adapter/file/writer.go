package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
)

// Output file suffixes, appended to the report prefix.
const (
	SuffixBlindSpots       = "_BlindSpots.csv"
	SuffixObstructionIndex = "_ObstructionIndex.csv"
	SuffixAvailability     = "_Availability.txt"
	SuffixHeatFlux         = "_H0.txt"
	SuffixSummary          = "_Summary.yaml"
)

// ReportWriter writes a SiteReport as a set of files sharing a prefix.
// It implements pipeline.ReportLoader.
type ReportWriter struct {
	prefix string
	logger *slog.Logger
}

// NewReportWriter creates a writer producing <prefix>_*.csv/txt/yaml files.
func NewReportWriter(prefix string, logger *slog.Logger) *ReportWriter {
	return &ReportWriter{prefix: prefix, logger: logger}
}

// Name identifies the sink in logs and metric labels.
func (w *ReportWriter) Name() string { return "files" }

// LoadReport writes every report file, stopping at the first failure.
func (w *ReportWriter) LoadReport(_ context.Context, r domain.SiteReport) error {
	if dir := filepath.Dir(w.prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	outputs := []struct {
		suffix string
		write  func(io.Writer) error
	}{
		{SuffixBlindSpots, func(f io.Writer) error { return WriteBlindSpots(f, r.Directions) }},
		{SuffixObstructionIndex, func(f io.Writer) error { return WriteObstructionIndex(f, r.Directions) }},
		{SuffixAvailability, func(f io.Writer) error { return WriteAvailability(f, r) }},
		{SuffixHeatFlux, func(f io.Writer) error { return WriteHeatFlux(f, r.Flux) }},
		{SuffixSummary, func(f io.Writer) error { return WriteSummary(f, r) }},
	}
	for _, o := range outputs {
		path := w.prefix + o.suffix
		if err := writeFile(path, o.write); err != nil {
			return err
		}
		w.logger.Debug("report file written", "path", path)
	}
	w.logger.Info("report files written", "prefix", w.prefix, "files", len(outputs))
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
