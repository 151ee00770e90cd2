package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/framestack/frames"
	"github.com/lepinkainen/framestack/types"
	"github.com/lepinkainen/framestack/ui"
)

// LoadCmd loads a frame folder into a [3, N, size, size] stack, reports its statistics and
// optionally exports it for a model-consuming process.
type LoadCmd struct {
	Folder string `arg:"" name:"folder" help:"Directory containing the frame images" type:"path"`

	LoadFlags   `embed:""`
	ExportFlags `embed:""`

	NoProgress bool `name:"no-progress" help:"Disable the progress bar"`
	TUI        bool `name:"tui" help:"Show an interactive progress view while loading"`

	out io.Writer
}

func (cmd *LoadCmd) writer() io.Writer {
	if cmd.out != nil {
		return cmd.out
	}
	return os.Stdout
}

// Run executes the load command.
func (cmd *LoadCmd) Run(appCtx *types.AppContext) error {
	log := appCtx.Log()
	out := cmd.writer()

	opts, err := cmd.Options()
	if err != nil {
		return err
	}

	var format frames.Format
	if cmd.Output != "" {
		if format, err = cmd.ResolveFormat(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("framestack %s", appCtx.VersionOrDefault())))
	log.Debug().
		Str("folder", cmd.Folder).
		Int("size", opts.Size).
		Str("suffix", opts.Suffix).
		Str("channel_order", string(opts.ChannelOrder)).
		Stringer("normalization", opts.Normalization).
		Bool("raw", cmd.Raw).
		Msg("loading frames")

	var stack *frames.FrameStack
	if cmd.TUI {
		stack, err = cmd.loadWithTUI(opts, appCtx.VersionOrDefault())
	} else {
		progress, finish := newProgress(!cmd.NoProgress)
		opts.Progress = progress
		stack, err = cmd.Load(cmd.Folder, opts)
		finish()
	}
	if err != nil {
		return fmt.Errorf("failed to load frames: %w", err)
	}

	if stack.Frames == 0 {
		log.Warn().Str("folder", cmd.Folder).Str("suffix", opts.Suffix).Msg("no frames matched")
	}
	fmt.Fprint(out, ui.RenderStackReport(stack, opts.ChannelOrder))

	if cmd.Output == "" {
		return nil
	}

	if err := writeExport(cmd.Output, stack, format); err != nil {
		return err
	}
	log.Info().Str("output", cmd.Output).Str("format", string(format)).Int("frames", stack.Frames).Msg("exported stack")
	fmt.Fprintf(out, "%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Wrote %s", cmd.Output)))
	return nil
}

// loadWithTUI runs the loader in the background and feeds its progress to the load view.
func (cmd *LoadCmd) loadWithTUI(opts frames.Options, version string) (*frames.FrameStack, error) {
	p := tea.NewProgram(ui.NewLoadModel(cmd.Folder, version))

	opts.Progress = func(done, total int, path string) {
		p.Send(ui.FrameLoadedMsg{Done: done, Total: total, Path: path})
	}

	type result struct {
		stack *frames.FrameStack
		err   error
	}
	results := make(chan result, 1)
	go func() {
		stack, err := cmd.Load(cmd.Folder, opts)
		frameCount := 0
		if stack != nil {
			frameCount = stack.Frames
		}
		results <- result{stack, err}
		p.Send(ui.LoadFinishedMsg{Frames: frameCount, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}
	if m, ok := final.(ui.LoadModel); ok && !m.Finished() {
		return nil, errors.New("load cancelled")
	}

	res := <-results
	return res.stack, res.err
}
