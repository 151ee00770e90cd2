package ui

// TUI message types for loader progress

// FrameLoadedMsg reports that one frame was decoded, resized and stored.
type FrameLoadedMsg struct {
	Done  int
	Total int
	Path  string
}

// LoadFinishedMsg ends the load. Err is nil on success.
type LoadFinishedMsg struct {
	Frames int
	Err    error
}
