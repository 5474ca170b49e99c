// Package archive prepares a station's monthly data tree for checking:
// it expands compressed raw files and concatenates monthly processed or
// diagnostic files into one yearly file.
//
// The tree is laid out as <root>/<tree>/YYYYMM/<files>, with tree one of
// raw, processed or diagnostic.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// ErrNoData is returned when no month directory of the requested year exists.
var ErrNoData = errors.New("no data directories for year")

// Kind selects one of the collected file families.
type Kind string

const (
	Processed  Kind = "processed"
	Diagnostic Kind = "diagnostic"
)

// pattern is the glob matching the kind's monthly files.
func (k Kind) pattern() (string, error) {
	switch k {
	case Processed:
		return "*p", nil
	case Diagnostic:
		return "*d", nil
	default:
		return "", fmt.Errorf("unknown archive kind %q", string(k))
	}
}

// Result counts what a run touched.
type Result struct {
	Dirs   int
	Files  int
	Failed int
	Bytes  int64
}

// monthDirs returns the sorted YYYYMM directories of year under root/tree.
func monthDirs(root, tree string, year int) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, tree))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("list %s: %w", tree, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || !isMonthOf(e.Name(), year) {
			continue
		}
		dirs = append(dirs, filepath.Join(root, tree, e.Name()))
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w %d under %s", ErrNoData, year, filepath.Join(root, tree))
	}
	sort.Strings(dirs)
	return dirs, nil
}

func isMonthOf(name string, year int) bool {
	if len(name) != 6 {
		return false
	}
	y, err := strconv.Atoi(name[:4])
	if err != nil {
		return false
	}
	if _, err := strconv.Atoi(name[4:]); err != nil {
		return false
	}
	return y == year
}

// sortedGlob lists the files in dir matching pattern, in name order.
func sortedGlob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
