package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/xtree/internal/app/screen"
	"github.com/chmouel/xtree/internal/app/services"
	"github.com/chmouel/xtree/internal/app/toolbar"
	"github.com/chmouel/xtree/internal/app/transition"
	"github.com/chmouel/xtree/internal/config"
	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/tree"
)

const testTree = `
name: app
children:
  - name: core
    children:
      - name: util.go
  - name: util.go
  - name: web
    children:
      - name: core
        children:
          - name: util.go
      - name: README.md
`

func writeTree(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newLoadedModel returns a model with the tree already loaded, as if the
// command returned by Init had run.
func newLoadedModel(t *testing.T, cfg *config.AppConfig) *Model {
	t.Helper()
	path := writeTree(t, testTree)
	m := NewModel(cfg, path, transition.NewTimerAnimator())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	roots, err := tree.Load(path)
	require.NoError(t, err)
	m.Update(treeLoadedMsg{roots: roots})
	return m
}

func names(lines []tree.Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Node.Name)
	}
	return out
}

func TestNewModelUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Compressed = false
	cfg.Sort = models.SortHeight

	m := NewModel(cfg, "deps.yaml", transition.NewTimerAnimator())

	assert.False(t, m.state.IsCompressed)
	assert.Equal(t, models.SortHeight, m.state.Sorting())
	assert.False(t, m.state.IsFiltersBlockShown)
	assert.Equal(t, models.FocusNone, m.Focused())
	assert.Contains(t, m.View(), "Loading deps.yaml")
}

func TestTreeLoadedPopulatesIconsAndFocus(t *testing.T) {
	m := newLoadedModel(t, nil)

	assert.False(t, m.state.IsProcessing)
	assert.Equal(t, models.FocusRoots, m.Focused())

	var kinds []string
	for _, icon := range m.state.Icons {
		kinds = append(kinds, icon.Icon.SymbolName())
		assert.False(t, icon.IsHidden)
	}
	assert.Equal(t, []string{"folder", "go", "md"}, kinds)
	assert.Equal(t, []string{"app", "web", "core", "util.go", "README.md"}, names(m.visibleLines()))
}

func TestReloadKeepsHiddenIcons(t *testing.T) {
	m := newLoadedModel(t, nil)
	m.state.Icons[1].IsHidden = true

	roots, err := tree.Parse([]byte("- name: main.go\n- name: notes.txt\n"))
	require.NoError(t, err)
	m.Update(treeLoadedMsg{roots: roots})

	require.Len(t, m.state.Icons, 2)
	assert.Equal(t, "go", m.state.Icons[0].Icon.SymbolName())
	assert.True(t, m.state.Icons[0].IsHidden)
	assert.False(t, m.state.Icons[1].IsHidden)
	assert.Equal(t, []string{"notes.txt"}, names(m.visibleLines()))
}

func TestReloadErrorKeepsPreviousTree(t *testing.T) {
	m := newLoadedModel(t, nil)
	m.state.IsProcessing = true

	m.Update(treeLoadedMsg{err: errors.New("boom")})

	assert.False(t, m.state.IsProcessing)
	assert.Contains(t, m.status, "boom")
	assert.Len(t, m.roots, 1)
	assert.Contains(t, m.View(), "Error loading tree: boom")
}

func TestFilterPanelFocusRoundTrip(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.True(t, m.state.IsFiltersBlockShown)
	m.Update(transition.DoneMsg{ID: 1})
	assert.Equal(t, models.FocusRoots, m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FocusFilterName, m.Focused())
	for _, r := range "web" {
		m.Update(runeKey(string(r)))
	}
	assert.Equal(t, "web", m.filters.Query())
	assert.Equal(t, []string{"app", "web"}, names(m.visibleLines()))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.False(t, m.state.IsFiltersBlockShown)
	assert.Equal(t, models.FocusNone, m.Focused(), "hidden fields give up focus")
	assert.Equal(t, models.FocusFilterName, m.toolbar.SavedFocus())

	m.Update(transition.DoneMsg{ID: 2})
	assert.Equal(t, models.FocusRoots, m.Focused())
}

func TestStaleTransitionIgnored(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, models.FocusNone, m.Focused())

	m.Update(transition.DoneMsg{ID: 1})
	assert.Equal(t, models.FocusNone, m.Focused())
	m.Update(transition.DoneMsg{ID: 2})
	assert.Equal(t, models.FocusRoots, m.Focused())
}

func TestSetFocusRefusesHiddenPanel(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.SetFocus(models.FocusFilterDepth)
	assert.Equal(t, models.FocusRoots, m.Focused())

	m.state.IsFiltersBlockShown = true
	m.SetFocus(models.FocusFilterDepth)
	assert.Equal(t, models.FocusFilterDepth, m.Focused())
}

func TestTabCycle(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FocusRoots, m.Focused(), "only the tree while the panel is hidden")

	m.state.IsFiltersBlockShown = true
	var seen []models.FocusField
	for range 3 {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		seen = append(seen, m.Focused())
	}
	assert.Equal(t, []models.FocusField{models.FocusFilterName, models.FocusFilterDepth, models.FocusRoots}, seen)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, models.FocusFilterDepth, m.Focused())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, models.FocusRoots, m.Focused())
}

func TestDepthFilter(t *testing.T) {
	m := newLoadedModel(t, nil)
	m.state.IsFiltersBlockShown = true
	m.SetFocus(models.FocusFilterDepth)

	m.Update(runeKey("2"))

	assert.Equal(t, 2, m.filters.MaxDepth())
	assert.Equal(t, []string{"app", "web"}, names(m.visibleLines()))
}

func TestRefreshKey(t *testing.T) {
	m := newLoadedModel(t, nil)
	m.state.IsFiltersBlockShown = true
	m.SetFocus(models.FocusFilterName)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.NotNil(t, cmd)
	assert.True(t, m.state.IsProcessing)
	assert.False(t, m.state.IsFiltersBlockShown)
	assert.Equal(t, models.FocusRoots, m.Focused())
	assert.Contains(t, m.toolbar.View(&m.state, 200), "loading")
}

func TestToolbarKeysInTree(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(runeKey("c"))
	assert.False(t, m.state.IsCompressed)
	assert.Len(t, m.visibleLines(), 8)

	m.Update(runeKey("S"))
	assert.Equal(t, models.SortChildren, m.state.Sorting())

	_, cmd := m.Update(runeKey("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, toolbar.OpenSortPickerMsg{}, cmd())
}

func TestIconMenuHidesNodes(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(toolbar.OpenIconMenuMsg{})
	require.Equal(t, screen.TypeIconMenu, m.screens.Type())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Equal(t, map[string]struct{}{"go": {}}, m.state.Hidden())
	assert.NotContains(t, names(m.visibleLines()), "util.go")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.screens.IsActive())
	assert.True(t, m.state.Icons[1].IsHidden)
}

func TestSortPickerSelects(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(toolbar.OpenSortPickerMsg{})
	require.Equal(t, screen.TypeSortPicker, m.screens.Type())
	m.Update(runeKey("3"))

	assert.False(t, m.screens.IsActive())
	assert.Equal(t, models.SortHeight, m.state.Sorting())
}

func TestHelpScreen(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(runeKey("?"))
	require.Equal(t, screen.TypeHelp, m.screens.Type())
	assert.Contains(t, m.helpMarkdown(), toolbar.TooltipRefresh)
	assert.Contains(t, m.helpMarkdown(), "Show redundant explicit dependencies")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.screens.IsActive())
}

func TestCursorMovement(t *testing.T) {
	m := newLoadedModel(t, nil)

	m.Update(runeKey("j"))
	m.Update(runeKey("j"))
	assert.Equal(t, 2, m.cursor)
	m.Update(runeKey("G"))
	assert.Equal(t, 4, m.cursor)
	m.Update(runeKey("j"))
	assert.Equal(t, 4, m.cursor)
	m.Update(runeKey("g"))
	assert.Equal(t, 0, m.cursor)
	m.Update(runeKey("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestPanelFramesKeepCursorVisible(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Compressed = false
	path := writeTree(t, testTree)
	m := NewModel(cfg, path, transition.NewEventAnimator())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 14})
	roots, err := tree.Load(path)
	require.NoError(t, err)
	m.Update(treeLoadedMsg{roots: roots})

	m.Update(runeKey("G"))
	require.Equal(t, 7, m.cursor)
	require.Equal(t, 0, m.scrollOffset)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	require.True(t, m.toolbar.Transitioning())
	_, cmd := m.Update(transition.FrameMsg{ID: 1, At: time.Now().Add(transition.Duration)})
	require.NotNil(t, cmd)

	height := m.bodyHeight()
	require.Less(t, height, 8, "the grown panel takes rows from the body")
	assert.GreaterOrEqual(t, m.cursor, m.scrollOffset)
	assert.Less(t, m.cursor, m.scrollOffset+height)
}

func TestFileChangedRunsRefresh(t *testing.T) {
	m := newLoadedModel(t, nil)
	m.watch = services.NewFileWatchService(nil)
	m.watch.Events = make(chan struct{}, 1)
	m.watch.Waiting = true
	m.state.IsFiltersBlockShown = true

	_, cmd := m.Update(treeFileChangedMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, m.state.IsProcessing)
	assert.False(t, m.state.IsFiltersBlockShown)
	assert.True(t, m.watch.Waiting, "waiting again for the next event")

	m.state.IsProcessing = false
	m.watch.ResetWaiting()
	m.Update(treeFileChangedMsg{})
	assert.False(t, m.state.IsProcessing, "debounced")
}

func TestWatcherDisabledByDefault(t *testing.T) {
	m := NewModel(nil, writeTree(t, testTree), transition.NewTimerAnimator())

	assert.Nil(t, m.startWatcher())
	assert.Nil(t, m.watch)
}

func TestQuit(t *testing.T) {
	m := newLoadedModel(t, nil)

	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestViewLayout(t *testing.T) {
	m := newLoadedModel(t, nil)
	view := m.View()

	assert.Contains(t, view, "xtree")
	assert.Contains(t, view, "deps.yaml")
	assert.Contains(t, view, "Filters")
	assert.Contains(t, view, "README.md")
	assert.NotContains(t, view, "Depth")

	m.state.IsFiltersBlockShown = true
	assert.Contains(t, m.View(), "Depth")

	m.state.Icons[0].IsHidden = true
	assert.Contains(t, m.View(), "No nodes match the current filters.")
}
