package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/framestack/frames"
)

var channelNames = map[frames.ChannelOrder][frames.Channels]string{
	frames.RGB: {"R", "G", "B"},
	frames.BGR: {"B", "G", "R"},
	"":         {"B", "G", "R"},
}

// RenderStackReport summarizes the shape and per-channel statistics of a stack.
func RenderStackReport(s *frames.FrameStack, order frames.ChannelOrder) string {
	var content strings.Builder

	shape := s.Shape()
	content.WriteString(LabelStyle.Render("Shape"))
	content.WriteString(fmt.Sprintf("[%d, %d, %d, %d] (channel, frame, row, column)\n", shape[0], shape[1], shape[2], shape[3]))

	if s.Frames == 0 {
		content.WriteString(InfoStyle.Render("No frames matched"))
		content.WriteString("\n")
		return content.String()
	}

	names, ok := channelNames[order]
	if !ok {
		names = [frames.Channels]string{"0", "1", "2"}
	}
	for c, st := range frames.ChannelStats(s) {
		content.WriteString(LabelStyle.Render("Channel " + names[c]))
		content.WriteString(fmt.Sprintf("min %8.4f  max %8.4f  mean %8.4f\n", st.Min, st.Max, st.Mean))
	}

	return content.String()
}

// RenderFrameList prints frames in load order with their distance to the previous frame.
func RenderFrameList(hashes []frames.FrameHash, threshold int) string {
	var content strings.Builder

	for i, h := range hashes {
		item := NewFrameItem(i, h, threshold)
		line := fmt.Sprintf("%s  %s", item.Title(), item.Description())
		if item.Frozen {
			line = FrozenStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	return content.String()
}

// FrameItem is one row of the frame list.
type FrameItem struct {
	Index    int
	Name     string
	Hash     uint64
	Distance int
	Frozen   bool
}

// NewFrameItem builds a list row, flagging it frozen when its distance is within threshold.
func NewFrameItem(index int, h frames.FrameHash, threshold int) FrameItem {
	return FrameItem{
		Index:    index,
		Name:     filepath.Base(h.Path),
		Hash:     h.Hash,
		Distance: h.Distance,
		Frozen:   h.Distance >= 0 && h.Distance <= threshold,
	}
}

func (f FrameItem) FilterValue() string { return f.Name }
func (f FrameItem) Title() string       { return fmt.Sprintf("#%05d %s", f.Index, f.Name) }
func (f FrameItem) Description() string {
	switch {
	case f.Distance < 0:
		return fmt.Sprintf("phash %016x  first frame", f.Hash)
	case f.Frozen:
		return fmt.Sprintf("phash %016x  Δ%d ⚠️  frozen", f.Hash, f.Distance)
	default:
		return fmt.Sprintf("phash %016x  Δ%d", f.Hash, f.Distance)
	}
}
