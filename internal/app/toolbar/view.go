package toolbar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/chmouel/xtree/internal/models"
)

const (
	glyphFilter   = ""
	glyphCompress = ""
	glyphExpand   = ""
	glyphIcons    = ""
	glyphSort     = ""
	glyphRefresh  = ""
)

type button struct {
	glyph   string
	label   string
	pressed bool
}

func (t *ToolBar) buttons(st *models.ToolBarState) []button {
	compress := glyphCompress
	if !st.IsCompressed {
		compress = glyphExpand
	}
	hidden := len(st.Hidden())
	icons := "Icons"
	if hidden > 0 {
		icons = "Icons -" + strconv.Itoa(hidden)
	}
	return []button{
		{glyph: glyphFilter, label: "Filters", pressed: st.IsFiltersBlockShown},
		{glyph: compress, label: "Compressed", pressed: st.IsCompressed},
		{glyph: glyphIcons, label: icons, pressed: hidden > 0},
		{glyph: glyphSort, label: st.Sorting()},
		{glyph: glyphRefresh, label: "Refresh"},
	}
}

// View renders the toolbar strip on a single line of width cells.
func (t *ToolBar) View(st *models.ToolBarState, width int) string {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(t.thm.TextFg)
	pressed := base.Background(t.thm.AccentDim).Foreground(t.thm.Accent).Bold(true)
	sep := lipgloss.NewStyle().Foreground(t.thm.BorderDim).Render("│")

	parts := make([]string, 0, 5)
	for _, b := range t.buttons(st) {
		label := b.label
		if t.ShowIcons {
			label = b.glyph + " " + label
		}
		if b.pressed {
			parts = append(parts, pressed.Render(label))
		} else {
			parts = append(parts, base.Render(label))
		}
	}
	strip := strings.Join(parts, sep)

	busy := ""
	if st.IsProcessing {
		busy = lipgloss.NewStyle().Foreground(t.thm.WarnFg).Render(t.spinner.View() + " loading")
	}

	if width <= 0 {
		return strip + " " + busy
	}
	room := width - lipgloss.Width(busy)
	if lipgloss.Width(strip) > room {
		strip = truncate.StringWithTail(strip, uint(max(room-1, 0)), "…") //nolint:gosec
	}
	gap := max(width-lipgloss.Width(strip)-lipgloss.Width(busy), 0)
	return strip + strings.Repeat(" ", gap) + busy
}
