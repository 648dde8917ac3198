package tree

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/chmouel/xtree/internal/models"
)

// Options control how a tree is flattened.
type Options struct {
	Sorting    string              // one of models.SortingValues
	Compressed bool                // drop children already reachable through a sibling
	Hidden     map[string]struct{} // icon categories to skip, with their subtrees
	Query      string              // fuzzy name query; empty keeps everything
	MaxDepth   int                 // number of levels shown; 0 means unlimited
}

// Line is one row of a flattened tree.
type Line struct {
	Node     *Node
	Depth    int
	Prefix   string // box-drawing connectors in front of the name
	Category string
}

type renderer struct {
	opts    Options
	matched map[string]bool
	heights map[*Node]int
	reaches map[*Node]map[string]struct{}
	kept    map[*Node]bool
}

// Render flattens roots into display lines according to opts.
func Render(roots []*Node, opts Options) []Line {
	r := &renderer{
		opts:    opts,
		heights: make(map[*Node]int),
		reaches: make(map[*Node]map[string]struct{}),
		kept:    make(map[*Node]bool),
	}
	if query := strings.TrimSpace(opts.Query); query != "" {
		r.matched = matchNames(roots, query)
	}

	var lines []Line
	r.emit(r.visible(roots), 0, "", &lines)
	return lines
}

func matchNames(roots []*Node, query string) map[string]bool {
	seen := make(map[string]bool)
	var names []string
	Walk(roots, func(n *Node, _ int) {
		if !seen[n.Name] {
			seen[n.Name] = true
			names = append(names, n.Name)
		}
	})

	matched := make(map[string]bool)
	for _, match := range fuzzy.Find(query, names) {
		matched[match.Str] = true
	}
	return matched
}

func (r *renderer) emit(nodes []*Node, depth int, prefix string, lines *[]Line) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		connector := ""
		if depth > 0 {
			connector = "├── "
			if last {
				connector = "└── "
			}
		}
		*lines = append(*lines, Line{
			Node:     n,
			Depth:    depth,
			Prefix:   prefix + connector,
			Category: n.Category(),
		})

		if r.opts.MaxDepth > 0 && depth+1 >= r.opts.MaxDepth {
			continue
		}
		childPrefix := ""
		if depth > 0 {
			childPrefix = prefix + "│   "
			if last {
				childPrefix = prefix + "    "
			}
		}
		r.emit(r.visible(n.Children), depth+1, childPrefix, lines)
	}
}

func (r *renderer) visible(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if _, hidden := r.opts.Hidden[n.Category()]; hidden {
			continue
		}
		if r.matched != nil && !r.keep(n) {
			continue
		}
		out = append(out, n)
	}
	if r.opts.Compressed {
		out = r.elide(out)
	}
	r.sort(out)
	return out
}

// keep reports whether n matches the query or leads to a node that does.
func (r *renderer) keep(n *Node) bool {
	if kept, ok := r.kept[n]; ok {
		return kept
	}
	kept := r.matched[n.Name]
	for _, child := range n.Children {
		if r.keep(child) {
			kept = true
		}
	}
	r.kept[n] = kept
	return kept
}

// elide drops siblings that are already dependencies of another sibling.
// Two siblings that reach each other are both kept.
func (r *renderer) elide(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for i, n := range nodes {
		redundant := false
		for j, other := range nodes {
			if i == j || other.Name == n.Name {
				continue
			}
			if _, ok := r.reach(other)[n.Name]; !ok {
				continue
			}
			if _, back := r.reach(n)[other.Name]; back {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			out = append(out, n)
		}
	}
	return out
}

// reach returns the names found strictly below n.
func (r *renderer) reach(n *Node) map[string]struct{} {
	if names, ok := r.reaches[n]; ok {
		return names
	}
	names := make(map[string]struct{})
	r.reaches[n] = names
	for _, child := range n.Children {
		names[child.Name] = struct{}{}
		for name := range r.reach(child) {
			names[name] = struct{}{}
		}
	}
	return names
}

func (r *renderer) height(n *Node) int {
	if h, ok := r.heights[n]; ok {
		return h
	}
	h := 0
	for _, child := range n.Children {
		h = max(h, r.height(child)+1)
	}
	r.heights[n] = h
	return h
}

func (r *renderer) sort(nodes []*Node) {
	byName := func(a, b *Node) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	}

	slices.SortStableFunc(nodes, func(a, b *Node) int {
		switch r.opts.Sorting {
		case models.SortChildren:
			if d := len(b.Children) - len(a.Children); d != 0 {
				return d
			}
		case models.SortHeight:
			if d := r.height(b) - r.height(a); d != 0 {
				return d
			}
		}
		return byName(a, b)
	})
}
