package file

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// maxLineSize bounds a single processed record.
const maxLineSize = 1 << 20

// Source reads a combined processed file. It implements pipeline.LineExtractor.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a line source for the combined file at path.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// ExtractLines returns every line after the header, in file order.
func (s *Source) ExtractLines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	var (
		lines []string
		size  uint64
		first = true
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		size += uint64(len(sc.Bytes())) + 1
		if first {
			first = false
			continue
		}
		if len(lines)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	s.logger.Info("combined file read",
		"path", s.path,
		"lines", humanize.Comma(int64(len(lines))),
		"size", humanize.Bytes(size),
	)
	return lines, nil
}
