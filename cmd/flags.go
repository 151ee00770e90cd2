package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/framestack/frames"
)

// LoadFlags are the loader settings shared by load and watch.
type LoadFlags struct {
	Size         int       `help:"Edge length frames are resized to" default:"224"`
	Suffix       string    `help:"File name suffix that marks frame images (case-sensitive)" default:".jpg"`
	Mean         []float64 `help:"Per-channel mean used for normalization" default:"0.485,0.456,0.406"`
	Std          []float64 `help:"Per-channel standard deviation used for normalization" default:"0.229,0.224,0.225"`
	ChannelOrder string    `name:"channel-order" help:"Channel layout of the stack" enum:"rgb,bgr" default:"bgr"`
	Raw          bool      `help:"Skip normalization and keep 0-255 pixel values"`
}

// Options converts the flags into loader options.
func (f LoadFlags) Options() (frames.Options, error) {
	params, err := frames.NewNormalizationParams(f.Mean, f.Std)
	if err != nil {
		return frames.Options{}, err
	}

	opts := frames.DefaultOptions()
	opts.Size = f.Size
	opts.Suffix = f.Suffix
	opts.Normalization = params
	opts.ChannelOrder = frames.ChannelOrder(f.ChannelOrder)
	return opts, nil
}

// Load runs the loader, normalizing unless Raw is set.
func (f LoadFlags) Load(folder string, opts frames.Options) (*frames.FrameStack, error) {
	if f.Raw {
		return frames.LoadRaw(folder, opts)
	}
	return frames.Load(folder, opts)
}

// ExportFlags select where and how a loaded stack is written.
type ExportFlags struct {
	Output string `short:"o" help:"Write the stack to this file (.npy or .cbor)" type:"path"`
	Format string `help:"Export format (npy or cbor); inferred from the output extension when empty"`
}

// ResolveFormat returns the explicit format or infers it from the output path.
func (e ExportFlags) ResolveFormat() (frames.Format, error) {
	switch f := frames.Format(strings.ToLower(e.Format)); f {
	case "":
		return frames.FormatFromPath(e.Output)
	case frames.FormatNPY, frames.FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", frames.ErrInvalidConfig, e.Format)
	}
}
