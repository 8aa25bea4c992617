package domain

import (
	"sort"
	"strings"
)

// Kind distinguishes navigation-only containers from content pages.
type Kind string

const (
	// KindGroup is a container that exists only for navigation structure.
	KindGroup Kind = "group"

	// KindPage is a documentation page with body content.
	KindPage Kind = "page"
)

// DocumentNode is one documentation unit in a tree.
// It represents either a local markdown file / directory or a remote topic
// recovered from the navigation table.
type DocumentNode struct {
	// Path is the normalized, slash-separated logical path relative to the
	// documentation root. It is the unique identity key within a tree.
	Path string

	// Title is the human-readable title, from the first heading or the
	// navigation label.
	Title string

	// Kind is group or page.
	Kind Kind

	// Content is the raw body. Only set for pages.
	Content string

	// Fingerprint is the content hash used for change detection.
	// Only set for pages; empty means "content unknown".
	Fingerprint string

	// RemoteID is the remote topic URL once the node is known to exist on
	// the server. Empty for nodes that only exist locally.
	RemoteID string

	// Level is the depth in the tree. The root is level 0.
	Level int

	// Children holds the ordered child nodes. Sibling order is the
	// authoritative display order and must round-trip.
	Children []*DocumentNode
}

// IsPage reports whether the node carries body content.
func (n *DocumentNode) IsPage() bool {
	return n.Kind == KindPage
}

// AddChild appends a child and fixes up its level.
func (n *DocumentNode) AddChild(child *DocumentNode) {
	child.Level = n.Level + 1
	n.Children = append(n.Children, child)
}

// Walk visits every node below n in depth-first, sibling order.
// The walk stops at the first error.
func (n *DocumentNode) Walk(fn func(*DocumentNode) error) error {
	for _, child := range n.Children {
		if err := fn(child); err != nil {
			return err
		}
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// SortChildren orders children alphabetically by path, recursively.
// Used by builders before an explicit contents ordering is applied.
func (n *DocumentNode) SortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Path < n.Children[j].Path
	})
	for _, child := range n.Children {
		child.SortChildren()
	}
}

// Tree is an immutable per-run snapshot of a documentation hierarchy.
// One tree represents local state, another remote state.
type Tree struct {
	// Root is the group node wrapping the whole hierarchy. Its path is empty.
	Root *DocumentNode

	// Index is the page paired with the root that holds the navigation
	// table text (index.md locally, the index topic remotely).
	Index *DocumentNode
}

// NewTree returns an empty tree with a root group and an index page.
func NewTree() *Tree {
	return &Tree{
		Root:  &DocumentNode{Kind: KindGroup, Level: 0},
		Index: &DocumentNode{Path: "index", Kind: KindPage, Level: 0},
	}
}

// Flatten returns every node below the root in depth-first, sibling order.
// The index document is not included.
func (t *Tree) Flatten() []*DocumentNode {
	var nodes []*DocumentNode
	_ = t.Root.Walk(func(n *DocumentNode) error {
		nodes = append(nodes, n)
		return nil
	})
	return nodes
}

// Lookup returns the node with the given path, or nil.
// Comparison is case-normalized, matching path identity rules.
func (t *Tree) Lookup(path string) *DocumentNode {
	want := NormalizePath(path)
	var found *DocumentNode
	_ = t.Root.Walk(func(n *DocumentNode) error {
		if NormalizePath(n.Path) == want {
			found = n
			return errStopWalk
		}
		return nil
	})
	return found
}

// NormalizePath lower-cases a logical path for identity comparison.
// Paths are compared case-insensitively to avoid platform-dependent
// duplicate collisions.
func NormalizePath(path string) string {
	return strings.ToLower(strings.Trim(path, "/"))
}

// errStopWalk terminates a walk early. Never returned to callers.
var errStopWalk = stopWalk{}

type stopWalk struct{}

func (stopWalk) Error() string { return "stop walk" }
