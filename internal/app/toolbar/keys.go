package toolbar

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/chmouel/xtree/internal/models"
)

// Tooltips of the toolbar buttons.
const (
	TooltipShowFilters = "Show filters"
	TooltipHideFilters = "Hide filters"
	TooltipIcons       = "Show or hide nodes by icon type"
	TooltipSorting     = "Sorting by"
	TooltipRefresh     = "Read again the current tree input file"
	tooltipShowRedund  = "Show redundant explicit dependencies"
	tooltipHideRedund  = "Hide redundant explicit dependencies"
)

// CompressTooltip returns the tooltip of the compression button.
func CompressTooltip(compressed bool) string {
	if compressed {
		return tooltipShowRedund
	}
	return tooltipHideRedund
}

// FiltersTooltip returns the tooltip of the filter panel button.
func FiltersTooltip(shown bool) string {
	if shown {
		return TooltipHideFilters
	}
	return TooltipShowFilters
}

// KeyMap lists the toolbar bindings. Help texts double as button tooltips and
// follow the state through Sync.
type KeyMap struct {
	ToggleFilters key.Binding
	Compress      key.Binding
	Icons         key.Binding
	Sort          key.Binding
	CycleSort     key.Binding
	Refresh       key.Binding
}

// DefaultKeyMap returns the toolbar bindings. ctrl+f is how terminals deliver
// command+F.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleFilters: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", TooltipShowFilters)),
		Compress:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", CompressTooltip(true))),
		Icons:         key.NewBinding(key.WithKeys("i"), key.WithHelp("i", TooltipIcons)),
		Sort:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", TooltipSorting+" "+models.SortName)),
		CycleSort:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "Next sorting")),
		Refresh:       key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", TooltipRefresh)),
	}
}

// Sync updates the help texts from st.
func (k *KeyMap) Sync(st *models.ToolBarState) {
	k.ToggleFilters.SetHelp("ctrl+f", FiltersTooltip(st.IsFiltersBlockShown))
	k.Compress.SetHelp("c", CompressTooltip(st.IsCompressed))
	k.Sort.SetHelp("s", TooltipSorting+" "+st.Sorting())
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleFilters, k.Compress, k.Icons, k.Sort, k.Refresh}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleFilters, k.Compress, k.Icons},
		{k.Sort, k.CycleSort, k.Refresh},
	}
}

// IsGlobalKey reports whether keyStr reaches the toolbar even while a text
// field has the keyboard.
func IsGlobalKey(keyStr string) bool {
	return keyStr == "ctrl+f" || keyStr == "ctrl+r"
}
