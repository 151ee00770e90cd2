package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// checkFolder verifies that dir exists and is a directory.
func checkFolder(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: frame folder %s: %v", ErrInvalidInput, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, dir)
	}
	return nil
}

// FindFrameFiles lists the files directly inside dir whose name ends with suffix,
// sorted lexicographically. The sort is the only source of frame order, so frames
// should be named with zero-padded indices (00000.jpg, 00001.jpg, ...).
func FindFrameFiles(dir, suffix string) ([]string, error) {
	if err := checkFolder(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidInput, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if isDirEntryDir(path, entry) {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// isDirEntryDir reports whether entry is a directory, following symlinks.
func isDirEntryDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	// A dangling link is left for the decoder to report.
	return err == nil && info.IsDir()
}

// MatchesSuffix reports whether a file name would be picked up by FindFrameFiles.
func MatchesSuffix(path, suffix string) bool {
	return strings.HasSuffix(filepath.Base(path), suffix)
}
