package tree

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"

	"github.com/chmouel/xtree/internal/models"
)

const (
	categoryFolder = "folder"
	categoryFile   = "file"
)

// iconFileInfo feeds a synthetic file to go-devicons so a glyph can be looked
// up for a category rather than a real path.
type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

// GlyphFor returns the Nerd Font glyph of a category.
func GlyphFor(category string) string {
	glyph, _ := styleFor(category)
	return glyph
}

func styleFor(category string) (glyph, color string) {
	info := iconFileInfo{name: "node." + category}
	switch category {
	case categoryFolder:
		info = iconFileInfo{name: category, isDir: true}
	case categoryFile:
		info = iconFileInfo{name: category}
	}
	style := devicons.IconForInfo(info)
	return style.Icon, style.Color
}

// IconKinds lists the distinct categories of the tree in first-seen order.
func IconKinds(roots []*Node) []models.IconKind {
	seen := make(map[string]bool)
	var kinds []models.IconKind
	Walk(roots, func(n *Node, _ int) {
		category := n.Category()
		if seen[category] {
			return
		}
		seen[category] = true
		glyph, color := styleFor(category)
		kinds = append(kinds, models.IconKind{Name: category, Glyph: glyph, Color: color})
	})
	return kinds
}
