// Package static serves a resource tree read from a TOML file. It stands in
// for AWS in demos and end-to-end tests.
package static

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"cloudhop/internal/directory"
	"cloudhop/internal/domain"
)

// Node is one resource and the resources one level below it
type Node struct {
	Name     string `toml:"name"`
	ID       string `toml:"id"`
	Aux      string `toml:"aux"`
	Error    string `toml:"error"` // listing the children fails with this message
	Children []Node `toml:"children"`
}

// Tree is the fixture for one resource kind
type Tree struct {
	Titles []string `toml:"titles"`
	Error  string   `toml:"error"` // listing the base level fails with this message
	Items  []Node   `toml:"items"`
}

// Fixture maps a resource kind to its tree
type Fixture map[string]Tree

var defaultTitles = map[string][]string{
	domain.KindECS: {"Clusters", "Services", "Tasks", "Containers"},
	domain.KindEC2: {"Instances"},
}

// Load reads a fixture file
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture TOML. Missing ids default to the name.
func Parse(data []byte) (Fixture, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for kind, tree := range f {
		for i := range tree.Items {
			if err := fill(&tree.Items[i]); err != nil {
				return nil, fmt.Errorf("%s: %w", kind, err)
			}
		}
		f[kind] = tree
	}
	return f, nil
}

func fill(n *Node) error {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return errors.New("resource without a name")
	}
	if n.ID == "" {
		n.ID = n.Name
	}
	for i := range n.Children {
		if err := fill(&n.Children[i]); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	return nil
}

// Hierarchy returns the levels for kind backed by the fixture tree
func (f Fixture) Hierarchy(kind string) (directory.Hierarchy, error) {
	tree, ok := f[kind]
	if !ok {
		return directory.Hierarchy{}, fmt.Errorf("%w: %q not in fixture", domain.ErrUnknownKind, kind)
	}
	titles := tree.Titles
	if len(titles) == 0 {
		titles = defaultTitles[kind]
	}
	if len(titles) == 0 {
		return directory.Hierarchy{}, fmt.Errorf("%s: fixture has no level titles", kind)
	}

	h := directory.Hierarchy{Kind: kind}
	for _, title := range titles {
		h.Levels = append(h.Levels, directory.LevelSpec{Title: title, Fetch: tree.children})
	}
	return h, nil
}

// children walks the tree along ancestors and lists what is below
func (t Tree) children(ctx context.Context, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes, failure := t.Items, t.Error
	for depth, a := range ancestors {
		next, ok := find(nodes, a.ID)
		if !ok {
			return nil, fmt.Errorf("no %q at depth %d", a.ID, depth)
		}
		nodes, failure = next.Children, next.Error
	}
	if failure != "" {
		return nil, errors.New(failure)
	}
	out := make([]domain.Resource, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.Resource{Name: n.Name, ID: n.ID, Aux: n.Aux})
	}
	return out, nil
}

func find(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
