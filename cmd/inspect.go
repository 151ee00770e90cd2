package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/framestack/frames"
	"github.com/lepinkainen/framestack/types"
	"github.com/lepinkainen/framestack/ui"
)

// InspectCmd lists the frames of a folder in load order and flags frozen frames,
// i.e. frames perceptually identical to their predecessor.
type InspectCmd struct {
	Folder    string `arg:"" name:"folder" help:"Directory containing the frame images" type:"path"`
	Suffix    string `help:"File name suffix that marks frame images (case-sensitive)" default:".jpg"`
	Threshold int    `help:"Maximum perceptual hash distance for a frame to count as frozen" default:"5"`
	NoTUI     bool   `name:"no-tui" help:"Print a plain listing instead of the interactive browser"`

	out io.Writer
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run(appCtx *types.AppContext) error {
	log := appCtx.Log()
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	if cmd.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be >= 0, got %d", frames.ErrInvalidConfig, cmd.Threshold)
	}

	paths, err := frames.FindFrameFiles(cmd.Folder, cmd.Suffix)
	if err != nil {
		return err
	}
	log.Debug().Str("folder", cmd.Folder).Int("frames", len(paths)).Msg("hashing frames")

	hashes, err := frames.HashFrames(paths)
	if err != nil {
		return fmt.Errorf("failed to hash frames: %w", err)
	}

	frozen := frames.FrozenFrames(hashes, cmd.Threshold)
	log.Info().Int("frames", len(hashes)).Int("frozen", len(frozen)).Msg("inspection complete")

	if cmd.NoTUI || len(hashes) == 0 {
		fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Frames in %s", cmd.Folder)))
		if len(hashes) == 0 {
			fmt.Fprintf(out, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("No frames matched suffix %q", cmd.Suffix)))
			return nil
		}
		fmt.Fprint(out, ui.RenderFrameList(hashes, cmd.Threshold))
		fmt.Fprintf(out, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("%d frames, %d frozen", len(hashes), len(frozen))))
		return nil
	}

	model := ui.NewInspectModel(filepath.Base(cmd.Folder), hashes, cmd.Threshold)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
