package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadedFrameEntry is one row of the loaded frames log.
type LoadedFrameEntry struct {
	Index int
	Path  string
}

func (e LoadedFrameEntry) FilterValue() string { return filepath.Base(e.Path) }
func (e LoadedFrameEntry) Title() string       { return fmt.Sprintf("#%05d %s", e.Index, filepath.Base(e.Path)) }
func (e LoadedFrameEntry) Description() string { return "✓ " + filepath.Dir(e.Path) }

// LoadModel shows loader progress while a folder is read into a stack.
type LoadModel struct {
	total  int
	loaded int
	frames int
	err    error

	overall  progress.Model
	frameLog list.Model

	width  int
	height int

	finished bool
	quitting bool

	folder  string
	version string
}

// NewLoadModel creates a progress view for loading folder.
func NewLoadModel(folder, version string) LoadModel {
	frameLog := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 12)
	frameLog.Title = "Loaded Frames"
	frameLog.SetShowStatusBar(false)
	frameLog.SetFilteringEnabled(false)

	return LoadModel{
		overall:  progress.New(progress.WithDefaultGradient()),
		frameLog: frameLog,
		folder:   folder,
		version:  version,
	}
}

// Finished reports whether the loader delivered its final message.
func (m LoadModel) Finished() bool { return m.finished }

// Err returns the loader error, if any.
func (m LoadModel) Err() error { return m.err }

// Init implements tea.Model
func (m LoadModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m LoadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overall.Width = max(msg.Width-30, 10)
		m.frameLog.SetSize(msg.Width-4, msg.Height/2)

	case FrameLoadedMsg:
		m.total = msg.Total
		m.loaded = msg.Done
		entry := LoadedFrameEntry{Index: msg.Done - 1, Path: msg.Path}
		m.frameLog.InsertItem(len(m.frameLog.Items()), entry)
		m.frameLog.Select(len(m.frameLog.Items()) - 1)

	case LoadFinishedMsg:
		m.finished = true
		m.frames = msg.Frames
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m LoadModel) View() string {
	if m.quitting {
		return "Cancelled.\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("framestack %s", m.version))
	folder := InfoStyle.Render(m.folder)

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.loaded) / float64(m.total)
	}
	overallView := fmt.Sprintf("Frames: %s (%d/%d)", m.overall.ViewAs(percent), m.loaded, m.total)

	status := InfoStyle.Render("Loading...")
	switch {
	case m.finished && m.err != nil:
		status = ErrorStyle.Render(fmt.Sprintf("❌ %v", m.err))
	case m.finished:
		status = SuccessStyle.Render(fmt.Sprintf("✅ Loaded %d frames", m.frames))
	}

	sections := []string{
		header + "\n" + folder,
		overallView,
		m.frameLog.View(),
		status,
		"Controls: [q] Quit",
	}

	return strings.Join(sections, "\n\n")
}
