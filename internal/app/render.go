package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/tree"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m *Model) size() (int, int) {
	width, height := m.windowWidth, m.windowHeight
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// visibleLines flattens the tree with the current toolbar and filter state.
func (m *Model) visibleLines() []tree.Line {
	return tree.Render(m.roots, tree.Options{
		Sorting:    m.state.Sorting(),
		Compressed: m.state.IsCompressed,
		Hidden:     m.state.Hidden(),
		Query:      m.filters.Query(),
		MaxDepth:   m.filters.MaxDepth(),
	})
}

func (m *Model) panelView(width int) string {
	return m.filters.view(width, m.toolbar.PanelFraction(&m.state))
}

func (m *Model) bodyHeight() int {
	width, height := m.size()
	used := 2 // header and toolbar
	if panel := m.panelView(width); panel != "" {
		used += lipgloss.Height(panel)
	}
	used++ // footer
	if m.status != "" {
		used++
	}
	return max(height-used, 1)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := len(m.visibleLines())
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	height := m.bodyHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+height {
		m.scrollOffset = m.cursor - height + 1
	}
	m.scrollOffset = max(min(m.scrollOffset, count-height), 0)
}

// View renders the viewer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width, height := m.size()

	if m.screens.IsActive() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.screens.Current().View())
	}

	sections := []string{m.renderHeader(width), m.toolbar.View(&m.state, width)}
	if panel := m.panelView(width); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, m.renderBody(width, m.bodyHeight()))
	if m.status != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Width(width).MaxHeight(1).Render(m.status))
	}
	sections = append(sections, m.renderFooter(width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(width int) string {
	title := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("xtree")
	file := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(filepath.Base(m.path))

	count := 0
	tree.Walk(m.roots, func(*tree.Node, int) { count++ })
	right := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(fmt.Sprintf("%d nodes", count))

	left := title + " " + file
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderBody(width, height int) string {
	lines := m.visibleLines()
	muted := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true)
	body := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)

	switch {
	case !m.loaded && m.status == "":
		return body.Render(muted.Render("Loading " + m.path + "..."))
	case !m.loaded:
		return body.Render("")
	case len(lines) == 0:
		return body.Render(muted.Render("No nodes match the current filters."))
	}

	kinds := make(map[string]models.IconKind, len(m.state.Icons))
	for _, icon := range m.state.Icons {
		kinds[icon.Icon.SymbolName()] = icon.Icon
	}

	end := min(m.scrollOffset+height, len(lines))
	rows := make([]string, 0, end-m.scrollOffset)
	for i := m.scrollOffset; i < end; i++ {
		rows = append(rows, m.renderLine(lines[i], kinds[lines[i].Category], i == m.cursor, width))
	}
	return body.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderLine(line tree.Line, kind models.IconKind, selected bool, width int) string {
	prefix := lipgloss.NewStyle().Foreground(m.theme.BorderDim).Render(line.Prefix)
	nameStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	if len(line.Node.Children) > 0 {
		nameStyle = nameStyle.Bold(true)
	}
	if selected {
		nameStyle = nameStyle.Foreground(m.theme.Accent)
		if m.focus == models.FocusRoots {
			nameStyle = nameStyle.Background(m.theme.AccentDim)
		}
	}

	glyph := ""
	if m.config.ShowIcons && kind.Glyph != "" {
		glyphStyle := lipgloss.NewStyle().Foreground(m.theme.Cyan)
		if kind.Color != "" {
			glyphStyle = glyphStyle.Foreground(lipgloss.Color(kind.Color))
		}
		glyph = glyphStyle.Render(kind.Glyph) + " "
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(prefix + glyph + nameStyle.Render(line.Node.Name))
}

func (m *Model) renderFooter(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	hints := []string{
		keyStyle.Render("tab") + " " + labelStyle.Render("focus"),
		keyStyle.Render("?") + " " + labelStyle.Render("help"),
		keyStyle.Render("q") + " " + labelStyle.Render("quit"),
	}
	appHints := strings.Join(hints, "  ")
	m.help.Width = max(width-lipgloss.Width(appHints)-2, 0)
	return lipgloss.NewStyle().MaxWidth(width).Render(m.help.View(m.toolbar.Keys(&m.state)) + "  " + appHints)
}

// helpMarkdown lists the key bindings with the tooltips matching the current
// state.
func (m *Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# xtree\n\n## Toolbar\n\n| Key | Action |\n| --- | --- |\n")
	for _, column := range m.toolbar.Keys(&m.state).FullHelp() {
		for _, binding := range column {
			b.WriteString(fmt.Sprintf("| `%s` | %s |\n", strings.Join(binding.Keys(), "`, `"), binding.Help().Desc))
		}
	}
	b.WriteString(`
## Navigation

| Key | Action |
| --- | --- |
| ` + "`j` / `k`" + ` | Move in the tree |
| ` + "`ctrl+d` / `ctrl+u`" + ` | Half page down / up |
| ` + "`g` / `G`" + ` | Jump to top / bottom |
| ` + "`tab`" + ` | Cycle focus between the tree and the filter fields |
| ` + "`esc`" + ` | Leave a filter field |
| ` + "`?`" + ` | Show this help |
| ` + "`q`" + ` | Quit |

## Menus

In the icon menu, ` + "`space`" + ` toggles a category, ` + "`ctrl+a`" + ` shows all and ` + "`ctrl+n`" + ` hides all. Typing filters the list; move with the arrow keys or ` + "`ctrl+j`" + ` / ` + "`ctrl+k`" + `.
`)
	return b.String()
}
