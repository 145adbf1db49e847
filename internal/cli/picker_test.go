package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/umlayout/pkg/layout"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m AlgorithmPicker, keys ...string) (AlgorithmPicker, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(AlgorithmPicker)
	}
	return m, cmd
}

func TestAlgorithmPickerStartsOnCurrent(t *testing.T) {
	m := NewAlgorithmPicker(layout.Grid)
	if m.Types[m.Cursor] != layout.Grid {
		t.Errorf("cursor on %v, want grid", m.Types[m.Cursor])
	}
}

func TestAlgorithmPickerNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want layout.Type
	}{
		{"down once", []string{"down"}, layout.Hierarchical},
		{"vim keys", []string{"j", "j", "k"}, layout.Hierarchical},
		{"clamped at bottom", []string{"down", "down", "down", "down"}, layout.Grid},
		{"clamped at top", []string{"up"}, layout.ForceDirected},
		{"number jump", []string{"3"}, layout.Grid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewAlgorithmPicker(layout.ForceDirected), tt.keys...)
			if got := m.Types[m.Cursor]; got != tt.want {
				t.Errorf("cursor on %v, want %v", got, tt.want)
			}
			if m.Selected != nil {
				t.Error("navigation should not select")
			}
		})
	}
}

func TestAlgorithmPickerSelect(t *testing.T) {
	m, cmd := press(NewAlgorithmPicker(layout.ForceDirected), "down", "enter")
	if m.Selected == nil || *m.Selected != layout.Hierarchical {
		t.Fatalf("Selected = %v, want hierarchical", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestAlgorithmPickerQuit(t *testing.T) {
	m, cmd := press(NewAlgorithmPicker(layout.ForceDirected), "esc")
	if m.Selected != nil {
		t.Error("quit should not select")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestAlgorithmPickerView(t *testing.T) {
	view := NewAlgorithmPicker(layout.ForceDirected).View()
	for _, typ := range layout.Types {
		if !strings.Contains(view, typ.String()) {
			t.Errorf("view missing %q", typ.String())
		}
	}
	if !strings.Contains(view, "[1/3]") {
		t.Errorf("view missing position indicator:\n%s", view)
	}
}
