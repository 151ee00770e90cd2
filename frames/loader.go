package frames

import (
	"fmt"
	"image"
)

const (
	// DefaultSize is the edge length frames are resized to.
	DefaultSize = 224
	// DefaultSuffix selects which files in the folder are frames.
	DefaultSuffix = ".jpg"
	// MaxSize is the largest accepted edge length.
	MaxSize = 8192
)

// Options configures a load. Start from DefaultOptions.
type Options struct {
	Size          int
	Suffix        string
	Normalization NormalizationParams
	ChannelOrder  ChannelOrder

	// Progress, when set, is called after each frame is stored.
	Progress func(done, total int, path string)
}

// DefaultOptions returns 224x224 frames from *.jpg files in BGR order with ImageNet normalization.
func DefaultOptions() Options {
	return Options{
		Size:          DefaultSize,
		Suffix:        DefaultSuffix,
		Normalization: DefaultNormalization(),
		ChannelOrder:  BGR,
	}
}

func (o Options) validate() error {
	if o.Size <= 0 || o.Size > MaxSize {
		return fmt.Errorf("%w: size must be in [1, %d], got %d", ErrInvalidConfig, MaxSize, o.Size)
	}
	if _, err := o.ChannelOrder.offsets(); err != nil {
		return err
	}
	return nil
}

// LoadFramesFromFolder loads every file in dir ending with suffix as a frame, resized to
// size x size and normalized with the default statistics.
func LoadFramesFromFolder(dir string, size int, suffix string) (*FrameStack, error) {
	opts := DefaultOptions()
	opts.Size = size
	opts.Suffix = suffix
	return Load(dir, opts)
}

// Load reads the frames in dir into a normalized [3, N, size, size] stack.
func Load(dir string, opts Options) (*FrameStack, error) {
	if err := opts.Normalization.Validate(); err != nil {
		return nil, err
	}
	raw, err := LoadRaw(dir, opts)
	if err != nil {
		return nil, err
	}
	if err := NormalizeInPlace(raw, opts.Normalization); err != nil {
		return nil, err
	}
	return raw, nil
}

// LoadRaw is Load without normalization: values are the resized 0-255 pixel intensities.
// Normalization in opts is ignored.
func LoadRaw(dir string, opts Options) (*FrameStack, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	files, err := FindFrameFiles(dir, opts.Suffix)
	if err != nil {
		return nil, err
	}

	if _, ok := elementCount(len(files), opts.Size, opts.Size, maxStreamElements); !ok {
		return nil, fmt.Errorf("%w: %d frames at size %d exceed %d elements", ErrInvalidConfig, len(files), opts.Size, maxStreamElements)
	}

	offsets, _ := opts.ChannelOrder.offsets()
	stack := NewFrameStack(len(files), opts.Size, opts.Size)

	for i, path := range files {
		img, err := DecodeFrame(path)
		if err != nil {
			return nil, err
		}

		resized := ResizeArea(img, opts.Size, opts.Size)
		stack.putFrame(i, resized, offsets)

		if opts.Progress != nil {
			opts.Progress(i+1, len(files), path)
		}
	}

	return stack, nil
}

// putFrame permutes an interleaved [row, column, channel] image into frame f of the
// planar [channel, frame, row, column] stack.
func (s *FrameStack) putFrame(f int, img *image.NRGBA, offsets [Channels]int) {
	for c := 0; c < Channels; c++ {
		off := offsets[c]
		for y := 0; y < s.Height; y++ {
			row := img.Pix[y*img.Stride:]
			base := s.index(c, f, y, 0)
			for x := 0; x < s.Width; x++ {
				s.Data[base+x] = float32(row[x*4+off])
			}
		}
	}
}
