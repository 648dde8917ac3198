package screen

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/xtree/internal/theme"
)

// HelpScreen shows the key bindings as rendered markdown.
type HelpScreen struct {
	Viewport viewport.Model
	Width    int
	Height   int
	Markdown string
	Light    bool
	Thm      *theme.Theme
}

// NewHelpScreen renders markdown for the available screen size.
func NewHelpScreen(markdown string, maxWidth, maxHeight int, light bool, thm *theme.Theme) *HelpScreen {
	s := &HelpScreen{
		Markdown: markdown,
		Light:    light,
		Thm:      thm,
		Viewport: viewport.New(0, 0),
	}
	s.SetSize(maxWidth, maxHeight)
	return s
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// SetSize updates the help screen dimensions and renders the content again.
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	s.Width = 72
	s.Height = 24
	if maxWidth > 0 {
		s.Width = min(96, max(40, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		s.Height = min(40, max(12, int(float64(maxHeight)*0.8)))
	}
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = max(5, s.Height-3)
	s.Viewport.SetContent(s.render())
	s.Viewport.GotoTop()
}

func (s *HelpScreen) render() string {
	style := styles.DarkStyle
	if s.Light {
		style = styles.LightStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(s.Viewport.Width-2),
	)
	if err == nil {
		if out, err := r.Render(s.Markdown); err == nil {
			return out
		}
	}
	return wrap.String(s.Markdown, s.Viewport.Width)
}

// Update scrolls the help or closes it.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEsc, keyCtrlC, "q", "?":
		return nil, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	case "ctrl+d", " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	}
	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the help box.
func (s *HelpScreen) View() string {
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		Render("j/k scroll • Esc close")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, s.Viewport.View(), footer))
}
