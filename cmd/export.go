package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/framestack/frames"
)

// exportTempInfix separates the export name from the random suffix of its temporary file.
const exportTempInfix = ".tmp-"

// writeExport writes s to path through a temporary file in the same directory,
// so readers never observe a half-written export.
func writeExport(path string, s *frames.FrameStack, format frames.Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+exportTempInfix+"*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := frames.Write(tmp, s, format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

// newProgress returns a loader progress callback backed by a progress bar that is
// created once the frame count is known, and a function to finish the bar.
func newProgress(enabled bool) (func(done, total int, path string), func()) {
	if !enabled {
		return nil, func() {}
	}

	var bar *progressbar.ProgressBar
	report := func(done, total int, path string) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "loading frames")
		}
		_ = bar.Set(done)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
	return report, finish
}
