package frames

// ChannelStats returns min, max and mean per channel. An empty stack gives zero stats.
func ChannelStats(s *FrameStack) [Channels]ChannelStat {
	var stats [Channels]ChannelStat
	plane := s.Frames * s.Height * s.Width
	if plane == 0 || len(s.Data) != Channels*plane {
		return stats
	}

	for c := 0; c < Channels; c++ {
		values := s.Data[c*plane : (c+1)*plane]
		st := ChannelStat{Min: values[0], Max: values[0]}
		var sum float64
		for _, v := range values {
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
			sum += float64(v)
		}
		st.Mean = sum / float64(plane)
		stats[c] = st
	}
	return stats
}
