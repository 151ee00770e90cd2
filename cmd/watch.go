package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lepinkainen/framestack/frames"
	"github.com/lepinkainen/framestack/types"
)

// WatchCmd reloads and re-exports a frame folder whenever matching frame files change.
type WatchCmd struct {
	Folder string `arg:"" name:"folder" help:"Directory containing the frame images" type:"existingdir"`

	LoadFlags   `embed:""`
	ExportFlags `embed:""`

	Debounce time.Duration `help:"Quiet period after the last change before reloading" default:"500ms"`
}

// Run executes the watch command until interrupted.
func (cmd *WatchCmd) Run(appCtx *types.AppContext) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.watch(ctx, appCtx.Log())
}

func (cmd *WatchCmd) watch(ctx context.Context, log zerolog.Logger) error {
	if cmd.Output == "" {
		return fmt.Errorf("%w: watch requires --output", frames.ErrInvalidConfig)
	}
	if cmd.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive, got %s", frames.ErrInvalidConfig, cmd.Debounce)
	}
	format, err := cmd.ResolveFormat()
	if err != nil {
		return err
	}
	opts, err := cmd.Options()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.Folder); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.Folder, err)
	}
	log.Info().Str("folder", cmd.Folder).Str("output", cmd.Output).Dur("debounce", cmd.Debounce).Msg("watching for frame changes")

	if err := cmd.export(log, opts, format); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !frames.MatchesSuffix(event.Name, opts.Suffix) || cmd.isExportFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("frame changed")
			pending = time.After(cmd.Debounce)

		case <-pending:
			pending = nil
			if err := cmd.export(log, opts, format); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

// isExportFile reports whether name is the output file or one of its temporary files.
func (cmd *WatchCmd) isExportFile(name string) bool {
	out := filepath.Clean(cmd.Output)
	if filepath.Dir(filepath.Clean(name)) != filepath.Dir(out) {
		return false
	}
	base, outBase := filepath.Base(name), filepath.Base(out)
	return base == outBase || strings.HasPrefix(base, outBase+exportTempInfix)
}

// export loads the folder and writes the stack. Undecodable frames are logged and
// skipped until the next change; anything else ends the watch.
func (cmd *WatchCmd) export(log zerolog.Logger, opts frames.Options, format frames.Format) error {
	stack, err := cmd.Load(cmd.Folder, opts)
	if err != nil {
		if errors.Is(err, frames.ErrDecode) {
			log.Warn().Err(err).Msg("skipping export")
			return nil
		}
		return fmt.Errorf("failed to load frames: %w", err)
	}

	if err := writeExport(cmd.Output, stack, format); err != nil {
		return err
	}
	log.Info().Int("frames", stack.Frames).Str("output", cmd.Output).Msg("exported stack")
	return nil
}
