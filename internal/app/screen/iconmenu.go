package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
)

// IconMenuScreen toggles the visibility of icon categories. It edits the
// icon states it was given in place, so every toggle is visible to the tree
// immediately.
type IconMenuScreen struct {
	Icons    *[]models.IconState
	Filtered []int // indexes into *Icons

	FilterInput  textinput.Model
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	ShowGlyphs   bool
	Thm          *theme.Theme

	// OnChange is called after each visibility change.
	OnChange func() tea.Cmd
}

// NewIconMenuScreen builds the icon menu sized to the terminal.
func NewIconMenuScreen(icons *[]models.IconState, maxWidth, maxHeight int, showGlyphs bool, thm *theme.Theme) *IconMenuScreen {
	width := min(max(int(float64(maxWidth)*0.6), 40), max(maxWidth, 40))
	height := min(max(int(float64(maxHeight)*0.7), 12), max(maxHeight, 12))

	ti := textinput.New()
	ti.Placeholder = "Filter icons..."
	ti.CharLimit = 64
	ti.Prompt = "> "
	ti.Focus()
	ti.Width = width - 4

	s := &IconMenuScreen{
		Icons:       icons,
		FilterInput: ti,
		Width:       width,
		Height:      height,
		ShowGlyphs:  showGlyphs,
		Thm:         thm,
	}
	s.applyFilter()
	return s
}

// Type returns the screen type.
func (s *IconMenuScreen) Type() Type {
	return TypeIconMenu
}

func (s *IconMenuScreen) maxVisible() int {
	return max(s.Height-6, 1)
}

// Update handles keyboard input for the icon menu. Printable keys other than
// space always go to the filter input.
func (s *IconMenuScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyCtrlC:
		return nil, nil
	case "up", "ctrl+k", "ctrl+p":
		if s.Cursor > 0 {
			s.Cursor--
			if s.Cursor < s.ScrollOffset {
				s.ScrollOffset = s.Cursor
			}
		}
		return s, nil
	case "down", "ctrl+j":
		if s.Cursor < len(s.Filtered)-1 {
			s.Cursor++
			if s.Cursor >= s.ScrollOffset+s.maxVisible() {
				s.ScrollOffset = s.Cursor - s.maxVisible() + 1
			}
		}
		return s, nil
	case " ":
		if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
			return s, nil
		}
		icon := &(*s.Icons)[s.Filtered[s.Cursor]]
		icon.IsHidden = !icon.IsHidden
		return s, s.changed()
	case "ctrl+a":
		return s, s.setFiltered(false)
	case "ctrl+n":
		return s, s.setFiltered(true)
	}

	var cmd tea.Cmd
	s.FilterInput, cmd = s.FilterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *IconMenuScreen) setFiltered(hidden bool) tea.Cmd {
	for _, idx := range s.Filtered {
		(*s.Icons)[idx].IsHidden = hidden
	}
	return s.changed()
}

func (s *IconMenuScreen) changed() tea.Cmd {
	if s.OnChange == nil {
		return nil
	}
	return s.OnChange()
}

// Refilter rebuilds the visible entries, for when the icon list was replaced.
func (s *IconMenuScreen) Refilter() {
	s.applyFilter()
}

func (s *IconMenuScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.FilterInput.Value()))
	s.Filtered = s.Filtered[:0]
	for i, icon := range *s.Icons {
		if query == "" || strings.Contains(strings.ToLower(icon.Icon.SymbolName()), query) {
			s.Filtered = append(s.Filtered, i)
		}
	}

	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor >= len(s.Filtered) || s.Cursor < 0 {
		s.Cursor = 0
	}
	s.ScrollOffset = 0
}

// View renders the icon menu.
func (s *IconMenuScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("Icons")

	itemStyle := lipgloss.NewStyle().Padding(0, 1).Width(s.Width - 2)
	selectedStyle := itemStyle.
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)
	hiddenStyle := itemStyle.Foreground(s.Thm.MutedFg)

	var rows []string
	end := min(s.ScrollOffset+s.maxVisible(), len(s.Filtered))
	for i := s.ScrollOffset; i < end; i++ {
		icon := (*s.Icons)[s.Filtered[i]]
		checkbox := "[x] "
		if icon.IsHidden {
			checkbox = "[ ] "
		}
		label := checkbox
		if s.ShowGlyphs && icon.Icon.Glyph != "" {
			label += icon.Icon.Glyph + " "
		}
		label += icon.Icon.SymbolName()

		switch {
		case i == s.Cursor:
			rows = append(rows, selectedStyle.Render(label))
		case icon.IsHidden:
			rows = append(rows, hiddenStyle.Render(label))
		default:
			rows = append(rows, itemStyle.Render(label))
		}
	}
	if len(s.Filtered) == 0 {
		rows = append(rows, hiddenStyle.Italic(true).Render("No icons match."))
	}

	shown := 0
	for _, icon := range *s.Icons {
		if !icon.IsHidden {
			shown++
		}
	}
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render(fmt.Sprintf("%d/%d shown • Space toggle • ^A/^N all/none • Enter close", shown, len(*s.Icons)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.NewStyle().Padding(0, 1).Render(s.FilterInput.View()),
		strings.Join(rows, "\n"),
		footer,
	)
	return boxStyle.Render(content)
}
