package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLoadModel_Progress(t *testing.T) {
	var m tea.Model = NewLoadModel("/clip", "test")

	m, _ = m.Update(FrameLoadedMsg{Done: 1, Total: 2, Path: "/clip/00000.jpg"})
	m, _ = m.Update(FrameLoadedMsg{Done: 2, Total: 2, Path: "/clip/00001.jpg"})

	lm := m.(LoadModel)
	if lm.loaded != 2 || lm.total != 2 {
		t.Errorf("loaded/total = %d/%d, want 2/2", lm.loaded, lm.total)
	}
	if got := len(lm.frameLog.Items()); got != 2 {
		t.Errorf("Expected 2 log entries, got %d", got)
	}
	if lm.Finished() {
		t.Error("model should not be finished before LoadFinishedMsg")
	}
	if !strings.Contains(lm.View(), "(2/2)") {
		t.Errorf("view missing progress count: %q", lm.View())
	}
}

func TestLoadModel_Finished(t *testing.T) {
	var m tea.Model = NewLoadModel("/clip", "test")

	m, cmd := m.Update(LoadFinishedMsg{Frames: 3})
	if cmd == nil {
		t.Error("Expected a quit command after LoadFinishedMsg")
	}
	lm := m.(LoadModel)
	if !lm.Finished() || lm.Err() != nil {
		t.Errorf("Finished() = %v, Err() = %v", lm.Finished(), lm.Err())
	}
	if !strings.Contains(lm.View(), "Loaded 3 frames") {
		t.Errorf("unexpected view: %q", lm.View())
	}

	failure := errors.New("boom")
	m, _ = NewLoadModel("/clip", "test").Update(LoadFinishedMsg{Err: failure})
	if !errors.Is(m.(LoadModel).Err(), failure) {
		t.Errorf("Err() = %v, want %v", m.(LoadModel).Err(), failure)
	}
}

func TestLoadModel_Cancel(t *testing.T) {
	var m tea.Model = NewLoadModel("/clip", "test")

	m, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("Expected a quit command")
	}
	if m.(LoadModel).Finished() {
		t.Error("cancelled model should not report finished")
	}
	if m.View() != "Cancelled.\n" {
		t.Errorf("unexpected view after cancel: %q", m.View())
	}
}

func TestLoadedFrameEntry(t *testing.T) {
	e := LoadedFrameEntry{Index: 7, Path: "/clip/00007.jpg"}
	if e.Title() != "#00007 00007.jpg" {
		t.Errorf("Title() = %q", e.Title())
	}
	if e.FilterValue() != "00007.jpg" {
		t.Errorf("FilterValue() = %q", e.FilterValue())
	}
}
