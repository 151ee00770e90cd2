package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/framestack/frames"
)

// InspectModel is a read-only TUI listing the frames of a folder in load order.
type InspectModel struct {
	list   list.Model
	frozen []int

	showHelp bool
	quitting bool
}

// NewInspectModel creates the frame browser for hashes computed by frames.HashFrames.
func NewInspectModel(title string, hashes []frames.FrameHash, threshold int) InspectModel {
	items := make([]list.Item, len(hashes))
	var frozen []int
	for i, h := range hashes {
		item := NewFrameItem(i, h, threshold)
		if item.Frozen {
			frozen = append(frozen, i)
		}
		items[i] = item
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 24)
	l.Title = title

	return InspectModel{
		list:     l,
		frozen:   frozen,
		showHelp: true,
	}
}

// Init implements tea.Model
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "n":
			m.jumpFrozen(1)
			return m, nil
		case "N":
			m.jumpFrozen(-1)
			return m, nil
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// jumpFrozen selects the next (dir > 0) or previous frozen frame, if any.
func (m *InspectModel) jumpFrozen(dir int) {
	current := m.list.Index()
	if dir > 0 {
		for _, i := range m.frozen {
			if i > current {
				m.list.Select(i)
				return
			}
		}
		return
	}
	for j := len(m.frozen) - 1; j >= 0; j-- {
		if m.frozen[j] < current {
			m.list.Select(m.frozen[j])
			return
		}
	}
}

// View implements tea.Model
func (m InspectModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var content strings.Builder
	content.WriteString(m.list.View())
	content.WriteString("\n")

	summary := fmt.Sprintf("%d frames, %d frozen", len(m.list.Items()), len(m.frozen))
	if len(m.frozen) > 0 {
		content.WriteString(FrozenStyle.Render(summary))
	} else {
		content.WriteString(SuccessStyle.Render(summary))
	}
	if m.showHelp {
		content.WriteString(InfoStyle.Render("  n/N next/previous frozen frame  h toggle help  q quit"))
	}

	return content.String()
}
