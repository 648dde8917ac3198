package app

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
)

// filterPanel holds the name query and depth limit inputs.
type filterPanel struct {
	name  textinput.Model
	depth textinput.Model
	thm   *theme.Theme
}

func newFilterPanel(thm *theme.Theme) filterPanel {
	name := textinput.New()
	name.Placeholder = "Filter nodes by name..."
	name.Prompt = ""
	name.CharLimit = 100

	depth := textinput.New()
	depth.Placeholder = "all"
	depth.Prompt = ""
	depth.CharLimit = 3

	return filterPanel{name: name, depth: depth, thm: thm}
}

// Query returns the name query.
func (p *filterPanel) Query() string {
	return strings.TrimSpace(p.name.Value())
}

// MaxDepth returns the number of levels to show, 0 for all of them.
func (p *filterPanel) MaxDepth() int {
	n, err := strconv.Atoi(strings.TrimSpace(p.depth.Value()))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// focus gives the keyboard to the input matching field and blurs the other.
func (p *filterPanel) focus(field models.FocusField) tea.Cmd {
	p.name.Blur()
	p.depth.Blur()
	switch field {
	case models.FocusFilterName:
		return p.name.Focus()
	case models.FocusFilterDepth:
		return p.depth.Focus()
	}
	return nil
}

func (p *filterPanel) update(field models.FocusField, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch field {
	case models.FocusFilterName:
		p.name, cmd = p.name.Update(msg)
	case models.FocusFilterDepth:
		p.depth, cmd = p.depth.Update(msg)
	}
	return cmd
}

// view renders the panel cut to fraction of its height.
func (p *filterPanel) view(width int, fraction float64) string {
	if fraction <= 0 {
		return ""
	}
	labelStyle := lipgloss.NewStyle().Foreground(p.thm.MutedFg).Width(7)
	p.name.Width = max(width-14, 10)
	p.depth.Width = 4

	content := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Name")+p.name.View(),
		labelStyle.Render("Depth")+p.depth.View(),
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.thm.BorderDim).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(content)

	if fraction >= 1 {
		return box
	}
	lines := int(math.Ceil(float64(lipgloss.Height(box)) * fraction))
	return truncateToHeight(box, lines)
}

// truncateToHeight ensures output doesn't exceed maxLines
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
