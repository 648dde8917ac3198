package screen

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/xtree/internal/theme"
)

// SortPickerScreen lets the user pick one of the sorting values.
type SortPickerScreen struct {
	Values  []string
	Current string
	Cursor  int
	Width   int
	Thm     *theme.Theme

	OnSelect func(value string) tea.Cmd
}

// NewSortPickerScreen builds the picker with the cursor on current.
func NewSortPickerScreen(values []string, current string, thm *theme.Theme) *SortPickerScreen {
	width := 28
	for _, v := range values {
		width = max(width, len(v)+10)
	}
	s := &SortPickerScreen{
		Values:  values,
		Current: current,
		Width:   width,
		Thm:     thm,
	}
	for i, v := range values {
		if v == current {
			s.Cursor = i
		}
	}
	return s
}

// Type returns the screen type.
func (s *SortPickerScreen) Type() Type {
	return TypeSortPicker
}

// Update handles keyboard input for the picker.
func (s *SortPickerScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyEsc, keyCtrlC, "q", "s":
		return nil, nil
	case keyEnter, " ":
		return nil, s.choose(s.Cursor)
	case "up", "k", "ctrl+k":
		if s.Cursor > 0 {
			s.Cursor--
		}
		return s, nil
	case "down", "j", "ctrl+j":
		if s.Cursor < len(s.Values)-1 {
			s.Cursor++
		}
		return s, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(s.Values) {
		return nil, s.choose(n - 1)
	}
	return s, nil
}

func (s *SortPickerScreen) choose(idx int) tea.Cmd {
	if idx < 0 || idx >= len(s.Values) || s.OnSelect == nil {
		return nil
	}
	return s.OnSelect(s.Values[idx])
}

// View renders the picker.
func (s *SortPickerScreen) View() string {
	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("Sorting by")

	itemStyle := lipgloss.NewStyle().Padding(0, 1).Width(s.Width - 2)
	selectedStyle := itemStyle.
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	rows := make([]string, 0, len(s.Values))
	for i, v := range s.Values {
		marker := "  "
		if v == s.Current {
			marker = "• "
		}
		label := strconv.Itoa(i+1) + " " + marker + v
		if i == s.Cursor {
			rows = append(rows, selectedStyle.Render(label))
		} else {
			rows = append(rows, itemStyle.Render(label))
		}
	}

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 2).
		Padding(1, 1, 0, 1).
		Render("Enter select • Esc cancel")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), footer))
}
