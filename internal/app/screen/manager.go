package screen

import tea "github.com/charmbracelet/bubbletea"

// Manager keeps the stack of open modal screens.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push shows s on top of the current screen.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop closes the current screen and returns it, revealing the one below.
func (m *Manager) Pop() Screen {
	removed := m.current
	if n := len(m.stack); n > 0 {
		m.current = m.stack[n-1]
		m.stack = m.stack[:n-1]
	} else {
		m.current = nil
	}
	return removed
}

// Current returns the active screen, or nil.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether a screen is displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the active screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Update routes a key to the active screen and pops it when it asks to close.
func (m *Manager) Update(msg tea.KeyMsg) tea.Cmd {
	if m.current == nil {
		return nil
	}
	next, cmd := m.current.Update(msg)
	if next == nil {
		m.Pop()
		return cmd
	}
	m.current = next
	return cmd
}

// Clear closes every screen.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}
