package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/xtree/internal/models"
	"github.com/chmouel/xtree/internal/theme"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testIcons() []models.IconState {
	return []models.IconState{
		{Icon: models.IconKind{Name: "folder"}},
		{Icon: models.IconKind{Name: "go"}},
		{Icon: models.IconKind{Name: "md"}},
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "none", TypeNone.String())
	assert.Equal(t, "icon-menu", TypeIconMenu.String())
	assert.Equal(t, "sort-picker", TypeSortPicker.String())
	assert.Equal(t, "help", TypeHelp.String())
	assert.Equal(t, "unknown", Type(99).String())
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()
	assert.False(t, m.IsActive())
	assert.Equal(t, TypeNone, m.Type())

	icons := testIcons()
	menu := NewIconMenuScreen(&icons, 80, 24, false, thm)
	m.Push(menu)
	picker := NewSortPickerScreen(models.SortingValues(), models.SortName, thm)
	m.Push(picker)

	assert.Equal(t, TypeSortPicker, m.Type())
	assert.Same(t, picker, m.Pop())
	assert.Equal(t, TypeIconMenu, m.Type())

	m.Clear()
	assert.False(t, m.IsActive())
	assert.Nil(t, m.Pop())
}

func TestManagerUpdatePopsClosedScreen(t *testing.T) {
	m := NewManager()
	m.Push(NewSortPickerScreen(models.SortingValues(), models.SortName, theme.Dracula()))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, m.IsActive())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsActive())
	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIconMenuToggle(t *testing.T) {
	icons := testIcons()
	changes := 0
	s := NewIconMenuScreen(&icons, 80, 24, false, theme.Dracula())
	s.OnChange = func() tea.Cmd {
		changes++
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, next)
	s.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	assert.True(t, icons[1].IsHidden, "toggle edits the caller's slice")
	assert.Equal(t, 1, changes)

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	for _, icon := range icons {
		assert.True(t, icon.IsHidden)
	}
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	for _, icon := range icons {
		assert.False(t, icon.IsHidden)
	}
	assert.Equal(t, 3, changes)
}

func TestIconMenuFilter(t *testing.T) {
	icons := testIcons()
	s := NewIconMenuScreen(&icons, 80, 24, false, theme.Dracula())

	s.Update(runeKey("m"))
	s.Update(runeKey("d"))
	require.Equal(t, []int{2}, s.Filtered)

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.False(t, icons[0].IsHidden, "all/none only touch filtered icons")
	assert.True(t, icons[2].IsHidden)

	s.Update(runeKey("x"))
	assert.Equal(t, -1, s.Cursor)
	assert.Contains(t, s.View(), "No icons match.")
}

func TestIconMenuTypingOnlyFilters(t *testing.T) {
	for _, query := range []string{"json", "yaml", "java", "kt", "ini"} {
		t.Run(query, func(t *testing.T) {
			icons := []models.IconState{
				{Icon: models.IconKind{Name: "go"}},
				{Icon: models.IconKind{Name: query}},
				{Icon: models.IconKind{Name: "yml"}, IsHidden: true},
			}
			s := NewIconMenuScreen(&icons, 80, 24, false, theme.Dracula())

			for _, r := range query {
				next, _ := s.Update(runeKey(string(r)))
				require.NotNil(t, next, "typing %q closed the menu", string(r))
			}

			assert.Equal(t, query, s.FilterInput.Value())
			assert.Equal(t, []int{1}, s.Filtered)
			assert.False(t, icons[0].IsHidden)
			assert.False(t, icons[1].IsHidden)
			assert.True(t, icons[2].IsHidden)
		})
	}
}

func TestIconMenuCloses(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		icons := testIcons()
		s := NewIconMenuScreen(&icons, 80, 24, false, theme.Dracula())
		next, _ := s.Update(key)
		assert.Nil(t, next, key.String())
	}
}

func TestIconMenuView(t *testing.T) {
	icons := testIcons()
	icons[0].IsHidden = true
	view := NewIconMenuScreen(&icons, 80, 24, false, theme.Dracula()).View()

	assert.Contains(t, view, "[ ] folder")
	assert.Contains(t, view, "[x] go")
	assert.Contains(t, view, "2/3 shown")
}

func TestSortPicker(t *testing.T) {
	var chosen string
	s := NewSortPickerScreen(models.SortingValues(), models.SortChildren, theme.Dracula())
	s.OnSelect = func(v string) tea.Cmd {
		chosen = v
		return nil
	}
	assert.Equal(t, 1, s.Cursor, "cursor starts on the current value")

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, next)
	assert.Equal(t, models.SortHeight, chosen)

	next, _ = s.Update(runeKey("1"))
	assert.Nil(t, next)
	assert.Equal(t, models.SortName, chosen)

	chosen = ""
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, next)
	assert.Empty(t, chosen)
}

func TestSortPickerView(t *testing.T) {
	view := NewSortPickerScreen(models.SortingValues(), models.SortHeight, theme.Nord()).View()

	assert.Contains(t, view, "Sorting by")
	assert.Contains(t, view, "• Height")
	assert.Contains(t, view, "1   Name")
}

func TestHelpScreen(t *testing.T) {
	s := NewHelpScreen("# Keys\n\n- **q**: quit\n", 100, 40, false, theme.Dracula())

	assert.Equal(t, 75, s.Width)
	assert.Contains(t, s.View(), "quit")

	next, _ := s.Update(runeKey("j"))
	assert.NotNil(t, next)
	next, _ = s.Update(runeKey("?"))
	assert.Nil(t, next)
}
