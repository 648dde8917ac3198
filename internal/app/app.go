// Package app implements the Bubble Tea model of the tree viewer.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/xtree/internal/app/screen"
	"github.com/chmouel/xtree/internal/app/services"
	"github.com/chmouel/xtree/internal/app/toolbar"
	"github.com/chmouel/xtree/internal/app/transition"
	"github.com/chmouel/xtree/internal/config"
	"github.com/chmouel/xtree/internal/log"
	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
	"github.com/chmouel/xtree/internal/tree"
)

// Model is the main application model.
type Model struct {
	config *config.AppConfig
	path   string
	theme  *theme.Theme

	state   models.ToolBarState
	toolbar *toolbar.ToolBar
	focus   models.FocusField
	filters filterPanel
	screens *screen.Manager
	help    help.Model
	watch   *services.FileWatchService

	roots        []*tree.Node
	loaded       bool
	status       string
	cursor       int
	scrollOffset int

	windowWidth  int
	windowHeight int
	quitting     bool

	debugf func(string, ...any)
}

// NewModel creates the model for the tree stored at path. animator may be nil,
// in which case one is detected from the configuration and stdout.
func NewModel(cfg *config.AppConfig, path string, animator transition.Animator) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	thm := theme.GetTheme(cfg.Theme)
	if animator == nil {
		animator = transition.Detect(cfg.Transition, os.Stdout)
	}

	state := models.NewToolBarState()
	state.IsCompressed = cfg.Compressed
	state.SetSorting(cfg.Sort)

	m := &Model{
		config:  cfg,
		path:    path,
		theme:   thm,
		state:   state,
		filters: newFilterPanel(thm),
		screens: screen.NewManager(),
		help:    help.New(),
		debugf:  log.Component("app"),
	}
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(thm.MutedFg)
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(thm.BorderDim)

	m.toolbar = toolbar.New(animator, m.reload, thm, log.Component("toolbar"))
	m.toolbar.ShowIcons = cfg.ShowIcons
	m.debugf("transition backend: %s", animator.Kind())
	return m
}

// State returns a copy of the toolbar state.
func (m *Model) State() models.ToolBarState {
	return m.state
}

// Init loads the tree and starts the file watcher when enabled.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.startWatcher())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		if hs, ok := m.screens.Current().(*screen.HelpScreen); ok {
			hs.SetSize(msg.Width, msg.Height)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case treeLoadedMsg:
		return m, m.handleTreeLoaded(msg)

	case treeFileChangedMsg:
		return m, m.handleFileChanged()

	case errMsg:
		m.status = msg.err.Error()
		m.debugf("error: %v", msg.err)
		return m, nil

	case toolbar.OpenIconMenuMsg:
		menu := screen.NewIconMenuScreen(&m.state.Icons, m.windowWidth, m.windowHeight, m.config.ShowIcons, m.theme)
		m.screens.Push(menu)
		return m, nil

	case toolbar.OpenSortPickerMsg:
		picker := screen.NewSortPickerScreen(m.state.SortingValues(), m.state.Sorting(), m.theme)
		picker.OnSelect = func(value string) tea.Cmd {
			m.toolbar.SelectSorting(&m.state, value)
			return nil
		}
		m.screens.Push(picker)
		return m, nil
	}

	if cmd, handled := m.toolbar.Update(msg, &m.state, m); handled {
		// panel frames change the body height
		m.clampCursor()
		return m, cmd
	}
	return m, m.filters.update(m.focus, msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m, m.quit()
	}

	if m.screens.IsActive() {
		cmd := m.screens.Update(msg)
		m.clampCursor()
		return m, cmd
	}

	if m.focus.InFilterPanel() {
		switch {
		case toolbar.IsGlobalKey(keyStr):
			return m, m.toolbarKey(msg)
		case keyStr == "tab":
			return m, m.cycleFocus(1)
		case keyStr == "shift+tab":
			return m, m.cycleFocus(-1)
		case keyStr == "esc" || keyStr == "enter":
			m.SetFocus(models.FocusRoots)
			return m, nil
		}
		cmd := m.filters.update(m.focus, msg)
		m.clampCursor()
		return m, cmd
	}

	switch keyStr {
	case "q":
		return m, m.quit()
	case "?":
		m.screens.Push(screen.NewHelpScreen(m.helpMarkdown(), m.windowWidth, m.windowHeight, theme.IsLight(m.config.Theme), m.theme))
		return m, nil
	case "tab":
		return m, m.cycleFocus(1)
	case "shift+tab":
		return m, m.cycleFocus(-1)
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "ctrl+d", "pgdown":
		m.moveCursor(max(m.bodyHeight()/2, 1))
		return m, nil
	case "ctrl+u", "pgup":
		m.moveCursor(-max(m.bodyHeight()/2, 1))
		return m, nil
	case "g", "home":
		m.moveCursor(-len(m.visibleLines()))
		return m, nil
	case "G", "end":
		m.moveCursor(len(m.visibleLines()))
		return m, nil
	}

	return m, m.toolbarKey(msg)
}

// toolbarKey hands a key to the toolbar and keeps focus consistent with the
// panel visibility afterwards.
func (m *Model) toolbarKey(msg tea.KeyMsg) tea.Cmd {
	cmd, handled := m.toolbar.Update(msg, &m.state, m)
	if !handled {
		return nil
	}
	m.syncPanelFocus()
	m.clampCursor()
	return cmd
}

// syncPanelFocus takes focus away from a hidden filter panel. During a
// transition focus is left empty for the toolbar to restore.
func (m *Model) syncPanelFocus() {
	if !m.focus.InFilterPanel() || m.state.IsFiltersBlockShown {
		return
	}
	if m.toolbar.Transitioning() {
		m.focus = models.FocusNone
		m.filters.focus(models.FocusNone)
		return
	}
	m.SetFocus(models.FocusRoots)
}

// reload is the toolbar refresh callback: it marks the toolbar busy and reads
// the tree file again.
func (m *Model) reload() tea.Cmd {
	m.state.IsProcessing = true
	path := m.path
	m.debugf("reloading %s", path)
	return tea.Batch(m.toolbar.BusyTick(), func() tea.Msg {
		roots, err := tree.Load(path)
		return treeLoadedMsg{roots: roots, err: err}
	})
}

func (m *Model) handleTreeLoaded(msg treeLoadedMsg) tea.Cmd {
	m.state.IsProcessing = false
	if msg.err != nil {
		m.status = fmt.Sprintf("Error loading tree: %v", msg.err)
		m.debugf("load failed: %v", msg.err)
		return nil
	}
	m.roots = msg.roots
	m.loaded = true
	m.status = ""
	m.state.Icons = models.ReplaceIcons(m.state.Icons, tree.IconKinds(msg.roots))
	if menu, ok := m.screens.Current().(*screen.IconMenuScreen); ok {
		menu.Refilter()
	}
	if m.focus == models.FocusNone && !m.toolbar.Transitioning() {
		m.SetFocus(models.FocusRoots)
	}
	m.clampCursor()
	m.debugf("loaded %d roots, %d icon kinds", len(msg.roots), len(m.state.Icons))
	return nil
}

func (m *Model) startWatcher() tea.Cmd {
	if !m.config.AutoReload || m.path == "" {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewFileWatchService(log.Component("watch"))
	}
	started, err := m.watch.Start(m.path)
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: fmt.Errorf("cannot watch %s: %w", m.path, err)}
		}
	}
	if !started {
		return nil
	}
	return m.waitForFileEvent()
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return treeFileChangedMsg{}
	}
}

func (m *Model) handleFileChanged() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	m.watch.ResetWaiting()
	next := m.waitForFileEvent()
	if !m.watch.ShouldRefresh(time.Now()) {
		return next
	}
	m.debugf("tree file changed")
	cmd := m.toolbar.Refresh(&m.state)
	m.syncPanelFocus()
	return tea.Batch(cmd, next)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.watch != nil {
		m.watch.Stop()
	}
	return tea.Quit
}
