package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/umlayout/pkg/layout"
)

// =============================================================================
// AlgorithmPicker - Interactive algorithm selection
// =============================================================================

// AlgorithmPicker is the bubbletea model behind "layout --interactive".
type AlgorithmPicker struct {
	Types    []layout.Type
	Cursor   int
	Selected *layout.Type
}

// NewAlgorithmPicker creates a picker with the cursor on current.
func NewAlgorithmPicker(current layout.Type) AlgorithmPicker {
	m := AlgorithmPicker{Types: layout.Types}
	for i, t := range m.Types {
		if t == current {
			m.Cursor = i
		}
	}
	return m
}

func (m AlgorithmPicker) Init() tea.Cmd {
	return nil
}

func (m AlgorithmPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Types)-1 {
			m.Cursor++
		}
	case "1", "2", "3":
		if i := int(key.String()[0] - '1'); i < len(m.Types) {
			m.Cursor = i
		}
	case "enter":
		t := m.Types[m.Cursor]
		m.Selected = &t
		return m, tea.Quit
	}
	return m, nil
}

func (m AlgorithmPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Algorithm"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.Types))
	for i, t := range m.Types {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, t.String(), t.Description()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Algorithm", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 2:
				return StyleDim
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))

	return b.String()
}

// pickAlgorithm runs the picker and returns the chosen algorithm, or false
// when the user quit without choosing.
func pickAlgorithm(current layout.Type) (layout.Type, bool, error) {
	final, err := tea.NewProgram(NewAlgorithmPicker(current)).Run()
	if err != nil {
		return current, false, err
	}
	m := final.(AlgorithmPicker)
	if m.Selected == nil {
		return current, false, nil
	}
	return *m.Selected, true, nil
}
