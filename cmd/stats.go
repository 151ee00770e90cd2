package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lepinkainen/framestack/frames"
	"github.com/lepinkainen/framestack/types"
	"github.com/lepinkainen/framestack/ui"
)

// StatsCmd reports the shape and per-channel statistics of an exported stack.
type StatsCmd struct {
	File         string `arg:"" name:"file" help:"Exported stack (.npy or .cbor)" type:"existingfile"`
	ChannelOrder string `name:"channel-order" help:"Channel order the stack was loaded with, used for labels" enum:"rgb,bgr" default:"bgr"`

	out io.Writer
}

// Run executes the stats command.
func (cmd *StatsCmd) Run(appCtx *types.AppContext) error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	format, err := frames.FormatFromPath(cmd.File)
	if err != nil {
		return err
	}

	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", cmd.File, err)
	}
	defer f.Close()

	stack, err := frames.Read(f, format)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}
	log := appCtx.Log()
	log.Debug().Str("file", cmd.File).Str("format", string(format)).Ints("shape", shapeSlice(stack)).Msg("read stack")

	fmt.Fprintln(out, ui.HeaderStyle.Render(cmd.File))
	// Exports do not record channel order.
	fmt.Fprint(out, ui.RenderStackReport(stack, frames.ChannelOrder(cmd.ChannelOrder)))
	return nil
}

func shapeSlice(s *frames.FrameStack) []int {
	shape := s.Shape()
	return shape[:]
}
