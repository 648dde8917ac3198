// Package models defines the data objects shared across xtree packages.
package models

import "slices"

// Sorting keys understood by the tree renderer.
const (
	SortName     = "Name"
	SortChildren = "Children"
	SortHeight   = "Height"
)

var sortingValues = [...]string{SortName, SortChildren, SortHeight}

// SortingValues returns the selectable sort keys in display order.
func SortingValues() []string {
	return slices.Clone(sortingValues[:])
}

// IsSortingValue reports whether value is one of the selectable sort keys.
func IsSortingValue(value string) bool {
	return slices.Contains(sortingValues[:], value)
}

// ToolBarState holds every toggle and selection controlled by the toolbar.
// It is owned by the application model and lent to the toolbar by pointer
// for the duration of a single update.
type ToolBarState struct {
	IsFiltersBlockShown bool
	IsCompressed        bool
	IsProcessing        bool
	Icons               []IconState

	sorting string
}

// NewToolBarState returns the state a new viewing session starts with.
func NewToolBarState() ToolBarState {
	return ToolBarState{
		IsCompressed: true,
		sorting:      SortName,
	}
}

// SortingValues returns the selectable sort keys.
func (s ToolBarState) SortingValues() []string {
	return SortingValues()
}

// Sorting returns the current sort key. A zero value state sorts by name.
func (s ToolBarState) Sorting() string {
	if s.sorting == "" {
		return SortName
	}
	return s.sorting
}

// SetSorting selects value as the sort key. Values outside SortingValues are
// rejected and leave the state untouched.
func (s *ToolBarState) SetSorting(value string) bool {
	if !IsSortingValue(value) {
		return false
	}
	s.sorting = value
	return true
}

// Hidden returns the symbolic names of the icon categories currently hidden.
func (s ToolBarState) Hidden() map[string]struct{} {
	return HiddenIconNames(s.Icons)
}
