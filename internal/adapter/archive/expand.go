package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// Expand decompresses every raw/YYYYMM/*.gz file of year next to itself and
// removes the archive once its content is written. A file that fails is
// logged and counted; the run goes on with the next one.
func Expand(ctx context.Context, root string, year int, logger *slog.Logger) (Result, error) {
	dirs, err := monthDirs(root, "raw", year)
	if err != nil {
		return Result{}, err
	}

	res := Result{Dirs: len(dirs)}
	for _, dir := range dirs {
		files, err := sortedGlob(dir, "*.gz")
		if err != nil {
			return res, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, in := range files {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			out := strings.TrimSuffix(in, ".gz")
			n, err := gunzip(in, out)
			if err != nil {
				res.Failed++
				logger.Warn("raw file not expanded", "file", in, "error", err)
				continue
			}
			if err := os.Remove(in); err != nil {
				logger.Warn("archive not removed", "file", in, "error", err)
			}
			res.Files++
			res.Bytes += n
			logger.Debug("raw file expanded", "file", out, "size", humanize.Bytes(uint64(n)))
		}
	}

	logger.Info("raw archive expanded",
		"year", year,
		"dirs", res.Dirs,
		"files", res.Files,
		"failed", res.Failed,
		"size", humanize.Bytes(uint64(res.Bytes)),
	)
	return res, nil
}

// gunzip writes the decompressed content of in to out. A partial out is
// removed on failure.
func gunzip(in, out string) (n int64, err error) {
	src, err := os.Open(in)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	zr, err := gzip.NewReader(src)
	if err != nil {
		return 0, fmt.Errorf("read gzip header: %w", err)
	}
	defer zr.Close()

	dst, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
		}
	}()

	n, err = io.Copy(dst, zr)
	if err != nil {
		return n, fmt.Errorf("decompress: %w", err)
	}
	return n, nil
}
