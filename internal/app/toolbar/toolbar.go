// Package toolbar implements the control strip above the tree: the filter
// panel toggle with its focus restoration, compression, icon visibility,
// sorting and reload.
package toolbar

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/xtree/internal/app/transition"
	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
)

// Focuser is the focus owner the toolbar saves and restores focus through.
type Focuser interface {
	// Focused returns the target holding focus, FocusNone when none does.
	Focused() models.FocusField
	// SetFocus moves focus to field.
	SetFocus(field models.FocusField)
}

// OpenIconMenuMsg asks the application to open the icon visibility menu.
type OpenIconMenuMsg struct{}

// OpenSortPickerMsg asks the application to open the sort picker.
type OpenSortPickerMsg struct{}

// ToolBar handles the toolbar actions on a ToolBarState owned by the caller.
type ToolBar struct {
	animator transition.Animator
	onUpdate func() tea.Cmd

	// restore is the last focus target captured by a toggle. It is never
	// cleared so a later toggle without focus still has somewhere to go.
	restore models.FocusField
	token   uint64
	pending bool
	target  bool // panel visibility the pending transition leads to

	spinner  spinner.Model
	spinning bool

	keys      KeyMap
	thm       *theme.Theme
	ShowIcons bool
	logf      func(string, ...any)
}

// New creates a toolbar. onUpdate runs on every refresh and its command is
// handed to the runtime as is.
func New(animator transition.Animator, onUpdate func() tea.Cmd, thm *theme.Theme, logf func(string, ...any)) *ToolBar {
	if animator == nil {
		animator = transition.NewTimerAnimator()
	}
	if thm == nil {
		thm = theme.Dracula()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Line
	return &ToolBar{
		animator:  animator,
		onUpdate:  onUpdate,
		spinner:   sp,
		keys:      DefaultKeyMap(),
		thm:       thm,
		ShowIcons: true,
		logf:      logf,
	}
}

// Keys returns the bindings with help texts matching st.
func (t *ToolBar) Keys(st *models.ToolBarState) KeyMap {
	t.keys.Sync(st)
	return t.keys
}

// Animator returns the transition backend in use.
func (t *ToolBar) Animator() transition.Animator {
	return t.animator
}

// ToggleFilters shows or hides the filter panel. The current focus target is
// saved and restored once the transition is complete.
func (t *ToolBar) ToggleFilters(st *models.ToolBarState, focus Focuser) tea.Cmd {
	if current := focus.Focused(); current != models.FocusNone {
		t.restore = current
	}
	t.token++
	t.pending = true
	t.target = !st.IsFiltersBlockShown
	t.debugf("filters: transition %d to shown=%t, saved focus %s", t.token, t.target, t.restore)
	return t.animator.Animate(t.token, func() {
		st.IsFiltersBlockShown = !st.IsFiltersBlockShown
	})
}

// Complete restores focus after the transition identified by msg. Only the
// latest transition restores focus; it reports whether msg was that one.
func (t *ToolBar) Complete(msg transition.DoneMsg, focus Focuser) bool {
	if !t.pending || msg.ID != t.token {
		t.debugf("filters: ignoring completion of transition %d", msg.ID)
		return false
	}
	t.pending = false

	if current := focus.Focused(); current != models.FocusNone {
		t.debugf("filters: transition %d done, %s kept focus", msg.ID, current)
		return true
	}
	target := t.restore
	if target == models.FocusNone {
		target = models.FocusRoots
	}
	focus.SetFocus(target)
	if focus.Focused() == models.FocusNone {
		focus.SetFocus(models.FocusRoots)
	}
	t.debugf("filters: transition %d done, focus restored to %s", msg.ID, focus.Focused())
	return true
}

// Transitioning reports whether a panel transition is running.
func (t *ToolBar) Transitioning() bool {
	return t.pending
}

// SavedFocus returns the focus target the next completion would restore.
func (t *ToolBar) SavedFocus() models.FocusField {
	return t.restore
}

// PanelFraction returns how much of the filter panel should be drawn, from 0
// to 1.
func (t *ToolBar) PanelFraction(st *models.ToolBarState) float64 {
	progress := t.animator.Progress()
	switch {
	case st.IsFiltersBlockShown && t.pending && t.target:
		return progress
	case st.IsFiltersBlockShown:
		return 1
	case t.pending && !t.target:
		return 1 - progress
	default:
		return 0
	}
}

// ToggleCompressed flips the compressed display mode.
func (t *ToolBar) ToggleCompressed(st *models.ToolBarState) {
	st.IsCompressed = !st.IsCompressed
	t.debugf("compressed: %t", st.IsCompressed)
}

// SelectSorting sets the sort key when value is one of the sorting values.
func (t *ToolBar) SelectSorting(st *models.ToolBarState, value string) bool {
	if !st.SetSorting(value) {
		t.debugf("sorting: rejected %q", value)
		return false
	}
	t.debugf("sorting: %s", value)
	return true
}

// CycleSorting selects the sort key following the current one.
func (t *ToolBar) CycleSorting(st *models.ToolBarState) {
	values := st.SortingValues()
	next := (slices.Index(values, st.Sorting()) + 1) % len(values)
	t.SelectSorting(st, values[next])
}

// Refresh hides the filter panel at once and calls the update callback.
func (t *ToolBar) Refresh(st *models.ToolBarState) tea.Cmd {
	st.IsFiltersBlockShown = false
	t.debugf("refresh requested")
	if t.onUpdate == nil {
		return nil
	}
	return t.onUpdate()
}

// BusyTick starts the spinner unless it already runs.
func (t *ToolBar) BusyTick() tea.Cmd {
	if t.spinning {
		return nil
	}
	t.spinning = true
	return t.spinner.Tick
}

// Update handles the messages addressed to the toolbar and reports whether
// msg was one of them.
func (t *ToolBar) Update(msg tea.Msg, st *models.ToolBarState, focus Focuser) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case transition.FrameMsg:
		return t.animator.Advance(msg), true
	case transition.DoneMsg:
		t.Complete(msg, focus)
		return nil, true
	case spinner.TickMsg:
		if !st.IsProcessing {
			t.spinning = false
			return nil, true
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return cmd, true
	case tea.KeyMsg:
		return t.handleKey(msg, st, focus)
	}
	return nil, false
}

func (t *ToolBar) handleKey(msg tea.KeyMsg, st *models.ToolBarState, focus Focuser) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, t.keys.ToggleFilters):
		return t.ToggleFilters(st, focus), true
	case key.Matches(msg, t.keys.Compress):
		t.ToggleCompressed(st)
		return nil, true
	case key.Matches(msg, t.keys.Icons):
		return func() tea.Msg { return OpenIconMenuMsg{} }, true
	case key.Matches(msg, t.keys.Sort):
		return func() tea.Msg { return OpenSortPickerMsg{} }, true
	case key.Matches(msg, t.keys.CycleSort):
		t.CycleSorting(st)
		return nil, true
	case key.Matches(msg, t.keys.Refresh):
		return t.Refresh(st), true
	}
	return nil, false
}

func (t *ToolBar) debugf(format string, args ...any) {
	if t.logf == nil {
		return
	}
	t.logf(format, args...)
}
