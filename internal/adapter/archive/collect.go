package archive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Collect concatenates the monthly files of kind for year into dst. Months
// and files are taken in name order; only the first file keeps its header
// line.
func Collect(ctx context.Context, root string, year int, kind Kind, dst string, logger *slog.Logger) (res Result, err error) {
	pattern, err := kind.pattern()
	if err != nil {
		return Result{}, err
	}
	dirs, err := monthDirs(root, string(kind), year)
	if err != nil {
		return Result{}, err
	}
	res.Dirs = len(dirs)

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("create output directory: %w", err)
		}
	}
	out, err := os.Create(dst)
	if err != nil {
		return res, fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
	}()
	bw := bufio.NewWriter(out)

	first := true
	for _, dir := range dirs {
		files, err := sortedGlob(dir, pattern)
		if err != nil {
			return res, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			n, err := appendFile(bw, path, !first)
			if err != nil {
				return res, err
			}
			first = false
			res.Files++
			res.Bytes += n
			logger.Debug("monthly file collected", "file", path)
		}
	}
	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("write %s: %w", dst, err)
	}

	logger.Info("monthly files collected",
		"kind", string(kind),
		"year", year,
		"dirs", res.Dirs,
		"files", res.Files,
		"output", dst,
		"size", humanize.Bytes(uint64(res.Bytes)),
	)
	return res, nil
}

// appendFile copies path to w, dropping its first line when skipHeader is
// set. Content not ending in a newline gets one, so the next file starts on
// its own line.
func appendFile(w *bufio.Writer, path string, skipHeader bool) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if skipHeader {
		if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
	}

	lw := &lastByteWriter{w: w}
	n, err := io.Copy(lw, r)
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", path, err)
	}
	if n > 0 && lw.last != '\n' {
		if err := w.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type lastByteWriter struct {
	w    io.Writer
	last byte
}

func (l *lastByteWriter) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	if n > 0 {
		l.last = p[n-1]
	}
	return n, err
}
