package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/xtree/internal/models"
)

// Focused implements toolbar.Focuser.
func (m *Model) Focused() models.FocusField {
	return m.focus
}

// SetFocus implements toolbar.Focuser. Fields of a hidden filter panel cannot
// take focus; the tree gets it instead.
func (m *Model) SetFocus(field models.FocusField) {
	if field.InFilterPanel() && !m.state.IsFiltersBlockShown {
		m.debugf("focus: %s is hidden, focusing roots", field)
		field = models.FocusRoots
	}
	m.focus = field
	m.filters.focus(field)
}

// focusOrder lists the targets tab moves through.
func (m *Model) focusOrder() []models.FocusField {
	if m.state.IsFiltersBlockShown {
		return []models.FocusField{models.FocusRoots, models.FocusFilterName, models.FocusFilterDepth}
	}
	return []models.FocusField{models.FocusRoots}
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, field := range order {
		if field == m.focus {
			idx = (i + step + len(order)) % len(order)
			break
		}
	}
	field := order[idx]
	m.SetFocus(field)
	if field.InFilterPanel() {
		return m.filters.focus(field)
	}
	return nil
}
