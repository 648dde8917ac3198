package models

// FocusField names a region of the viewer that can hold keyboard focus.
type FocusField int

// Focus targets. FocusNone means no region holds focus.
const (
	FocusNone FocusField = iota
	FocusRoots
	FocusFilterName
	FocusFilterDepth
)

// String returns a human-readable name for the focus target.
func (f FocusField) String() string {
	switch f {
	case FocusNone:
		return "none"
	case FocusRoots:
		return "roots"
	case FocusFilterName:
		return "filter-name"
	case FocusFilterDepth:
		return "filter-depth"
	default:
		return "unknown"
	}
}

// InFilterPanel reports whether the target lives inside the filter panel.
func (f FocusField) InFilterPanel() bool {
	return f == FocusFilterName || f == FocusFilterDepth
}
