// Package tree loads dependency trees and flattens them for display.
package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is a single entry of a dependency tree. The same name may appear in
// several places; names identify a dependency, nodes are occurrences.
type Node struct {
	Name     string  `yaml:"name"`
	Icon     string  `yaml:"icon,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

var errEmptyDocument = errors.New("tree document is empty")

// Load reads a YAML or JSON tree from path. The document is either a single
// node or a list of root nodes.
func Load(path string) ([]*Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read tree %s: %w", path, err)
	}
	roots, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tree %s: %w", filepath.Base(path), err)
	}
	return roots, nil
}

// Parse decodes a tree document.
func Parse(data []byte) ([]*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errEmptyDocument
	}

	var roots []*Node
	switch top := doc.Content[0]; top.Kind {
	case yaml.SequenceNode:
		if err := top.Decode(&roots); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var root Node
		if err := top.Decode(&root); err != nil {
			return nil, err
		}
		roots = []*Node{&root}
	default:
		return nil, fmt.Errorf("line %d: expected a node or a list of nodes", top.Line)
	}

	for _, root := range roots {
		if err := validate(root); err != nil {
			return nil, err
		}
	}
	if len(roots) == 0 {
		return nil, errEmptyDocument
	}
	return roots, nil
}

func validate(n *Node) error {
	if n == nil {
		return errors.New("null node")
	}
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return errors.New("node without a name")
	}
	for _, child := range n.Children {
		if err := validate(child); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	return nil
}

// Category returns the icon category of the node: its explicit icon, "folder"
// for nodes with children, the lower-case file extension, or "file".
func (n *Node) Category() string {
	if icon := strings.ToLower(strings.TrimSpace(n.Icon)); icon != "" {
		return icon
	}
	if len(n.Children) > 0 {
		return categoryFolder
	}
	if ext := strings.TrimPrefix(filepath.Ext(n.Name), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return categoryFile
}

// Walk visits every node depth-first, parents before children.
func Walk(roots []*Node, visit func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		visit(n, depth)
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}
}
