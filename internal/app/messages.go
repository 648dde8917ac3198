package app

import "github.com/chmouel/xtree/internal/tree"

// Message types for the Bubble Tea app
type (
	errMsg        struct{ err error }
	treeLoadedMsg struct {
		roots []*tree.Node
		err   error
	}
	treeFileChangedMsg struct{}
)
