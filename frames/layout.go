package frames

// ChannelsLast holds stack values with axis order [frame, row, column, channel],
// so per-channel arithmetic runs over the innermost axis.
type ChannelsLast struct {
	Frames int
	Height int
	Width  int
	Data   []float32
}

// ToChannelsLast permutes [channel, frame, row, column] into [frame, row, column, channel].
func ToChannelsLast(s *FrameStack) *ChannelsLast {
	out := &ChannelsLast{
		Frames: s.Frames,
		Height: s.Height,
		Width:  s.Width,
		Data:   make([]float32, len(s.Data)),
	}
	plane := s.Frames * s.Height * s.Width
	for c := 0; c < Channels; c++ {
		src := s.Data[c*plane : (c+1)*plane]
		for i, v := range src {
			out.Data[i*Channels+c] = v
		}
	}
	return out
}

// ToChannelsFirst permutes [frame, row, column, channel] back into
// [channel, frame, row, column]. It is the inverse of ToChannelsLast.
func (cl *ChannelsLast) ToChannelsFirst() *FrameStack {
	out := &FrameStack{
		Frames: cl.Frames,
		Height: cl.Height,
		Width:  cl.Width,
		Data:   make([]float32, len(cl.Data)),
	}
	plane := cl.Frames * cl.Height * cl.Width
	for c := 0; c < Channels; c++ {
		dst := out.Data[c*plane : (c+1)*plane]
		for i := range dst {
			dst[i] = cl.Data[i*Channels+c]
		}
	}
	return out
}
