package frames

import (
	"fmt"
	"math"
)

// Channels is the number of color components in every FrameStack.
const Channels = 3

// FrameStack holds a clip as a flat row-major array with axis order
// [channel, frame, row, column].
type FrameStack struct {
	Frames int
	Height int
	Width  int
	Data   []float32
}

// NewFrameStack allocates a zero-initialized stack of shape [3, frames, height, width].
func NewFrameStack(frames, height, width int) *FrameStack {
	return &FrameStack{
		Frames: frames,
		Height: height,
		Width:  width,
		Data:   make([]float32, Channels*frames*height*width),
	}
}

// Shape returns the dimensions in axis order.
func (s *FrameStack) Shape() [4]int {
	return [4]int{Channels, s.Frames, s.Height, s.Width}
}

// Len is the expected element count for the stack's dimensions.
func (s *FrameStack) Len() int {
	return Channels * s.Frames * s.Height * s.Width
}

func (s *FrameStack) index(c, f, y, x int) int {
	return ((c*s.Frames+f)*s.Height+y)*s.Width + x
}

// At returns the value at channel c, frame f, row y, column x.
func (s *FrameStack) At(c, f, y, x int) float32 {
	return s.Data[s.index(c, f, y, x)]
}

// Set stores v at channel c, frame f, row y, column x.
func (s *FrameStack) Set(c, f, y, x int, v float32) {
	s.Data[s.index(c, f, y, x)] = v
}

// Clone returns a deep copy.
func (s *FrameStack) Clone() *FrameStack {
	out := &FrameStack{Frames: s.Frames, Height: s.Height, Width: s.Width}
	out.Data = make([]float32, len(s.Data))
	copy(out.Data, s.Data)
	return out
}

// Frame returns a copy of frame f as a single-frame stack.
func (s *FrameStack) Frame(f int) (*FrameStack, error) {
	if f < 0 || f >= s.Frames {
		return nil, fmt.Errorf("%w: frame %d out of range [0, %d)", ErrInvalidInput, f, s.Frames)
	}
	out := NewFrameStack(1, s.Height, s.Width)
	plane := s.Height * s.Width
	for c := 0; c < Channels; c++ {
		src := s.index(c, f, 0, 0)
		copy(out.Data[c*plane:(c+1)*plane], s.Data[src:src+plane])
	}
	return out, nil
}

// validate checks that Data matches the declared dimensions.
func (s *FrameStack) validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil frame stack", ErrInvalidInput)
	}
	if s.Frames < 0 || s.Height < 0 || s.Width < 0 {
		return fmt.Errorf("%w: negative dimension in shape %v", ErrInvalidInput, s.Shape())
	}
	n, ok := elementCount(s.Frames, s.Height, s.Width, math.MaxInt)
	if !ok {
		return fmt.Errorf("%w: shape %v is too large", ErrInvalidInput, s.Shape())
	}
	if len(s.Data) != n {
		return fmt.Errorf("%w: shape %v needs %d elements, have %d", ErrInvalidInput, s.Shape(), n, len(s.Data))
	}
	return nil
}

// elementCount returns Channels*frames*height*width, or false when a dimension is
// negative or the product exceeds limit.
func elementCount(frames, height, width, limit int) (int, bool) {
	if frames < 0 || height < 0 || width < 0 {
		return 0, false
	}
	if frames == 0 || height == 0 || width == 0 {
		return 0, true
	}
	n := Channels
	for _, d := range [...]int{frames, height, width} {
		if n > limit/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// ChannelOrder selects which color component is stored at channel index 0, 1 and 2.
type ChannelOrder string

const (
	// RGB stores red, green, blue.
	RGB ChannelOrder = "rgb"
	// BGR stores blue, green, red, the layout of OpenCV-decoded frames. It is the default.
	BGR ChannelOrder = "bgr"
)

// offsets maps channel indexes to byte offsets inside an NRGBA pixel.
func (o ChannelOrder) offsets() ([Channels]int, error) {
	switch o {
	case RGB:
		return [Channels]int{0, 1, 2}, nil
	case BGR, "":
		return [Channels]int{2, 1, 0}, nil
	default:
		return [Channels]int{}, fmt.Errorf("%w: unknown channel order %q", ErrInvalidConfig, string(o))
	}
}

// FrameHash is the perceptual hash of one frame and its distance to the previous frame.
type FrameHash struct {
	Path     string
	Hash     uint64
	Distance int // -1 for the first frame
}

// ChannelStat summarizes the values of one channel.
type ChannelStat struct {
	Min  float32
	Max  float32
	Mean float64
}
