package models

// IconKind is a node category known to the tree renderer.
type IconKind struct {
	Name  string // symbolic identifier, e.g. "folder" or "go"
	Glyph string // Nerd Font glyph, may be empty
	Color string // hex colour of the glyph, may be empty
}

// SymbolName returns the identifier used in the hidden icon set.
func (k IconKind) SymbolName() string {
	return k.Name
}

// IconState records whether nodes of a category are hidden.
type IconState struct {
	Icon     IconKind
	IsHidden bool
}

// HiddenIconNames projects icons onto the set of hidden symbol names.
// The result is rebuilt on every call so it can never go stale.
func HiddenIconNames(icons []IconState) map[string]struct{} {
	hidden := make(map[string]struct{})
	for _, icon := range icons {
		if icon.IsHidden {
			hidden[icon.Icon.SymbolName()] = struct{}{}
		}
	}
	return hidden
}

// ReplaceIcons builds a fresh icon list for kinds. Categories present in
// previous keep their hidden flag, new categories start visible.
func ReplaceIcons(previous []IconState, kinds []IconKind) []IconState {
	hidden := HiddenIconNames(previous)
	icons := make([]IconState, 0, len(kinds))
	for _, kind := range kinds {
		_, isHidden := hidden[kind.SymbolName()]
		icons = append(icons, IconState{Icon: kind, IsHidden: isHidden})
	}
	return icons
}
