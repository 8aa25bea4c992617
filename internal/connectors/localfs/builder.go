package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/navtable"
)

const (
	// IndexFilename is the designated index file at the documentation root.
	IndexFilename = "index.md"

	// Extension is the documentation file extension.
	Extension = ".md"
)

// Builder produces a tree snapshot from a documentation directory.
type Builder struct {
	docsPath string
}

// New creates a builder for the given documentation root.
func New(docsPath string) *Builder {
	return &Builder{docsPath: docsPath}
}

// Exists reports whether the documentation directory is present.
// When it is not, the migration flow applies instead of reconciliation.
func (b *Builder) Exists() bool {
	info, err := os.Stat(b.docsPath)
	return err == nil && info.IsDir()
}

// Build walks the documentation directory into a tree.
// Fails with domain.ErrInvalidStructure when the index file is missing,
// two entries normalize to the same path, or the contents listing is
// malformed.
func (b *Builder) Build() (*domain.Tree, error) {
	indexContent, err := os.ReadFile(filepath.Join(b.docsPath, IndexFilename))
	if err != nil {
		return nil, fmt.Errorf("%w: missing index file %s", domain.ErrInvalidStructure, IndexFilename)
	}

	tree := domain.NewTree()
	tree.Index.Content = string(indexContent)
	tree.Index.Fingerprint = domain.Fingerprint(tree.Index.Content)
	tree.Index.Title = firstHeading(tree.Index.Content)
	if tree.Index.Title == "" {
		tree.Index.Title = "Documentation Overview"
	}

	seen := map[string]bool{"index": true}
	if err := b.walk(b.docsPath, tree.Root, seen); err != nil {
		return nil, err
	}
	tree.Root.SortChildren()

	items, err := navtable.ParseContents(tree.Index.Content)
	if err != nil {
		return nil, err
	}
	if err := applyContents(tree, items); err != nil {
		return nil, err
	}

	return tree, nil
}

// walk recursively reads dir, appending child nodes to parent.
func (b *Builder) walk(dir string, parent *domain.DocumentNode, seen map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if parent.Level == 0 && name == IndexFilename {
			continue
		}
		if !entry.IsDir() && !strings.EqualFold(filepath.Ext(name), Extension) {
			continue
		}

		node := &domain.DocumentNode{
			Path: childPath(parent.Path, name, entry.IsDir()),
			Kind: domain.KindGroup,
		}
		if seen[node.Path] {
			return fmt.Errorf("%w: duplicate path %q", domain.ErrInvalidStructure, node.Path)
		}
		seen[node.Path] = true

		if entry.IsDir() {
			node.Title = deriveTitle(name)
			parent.AddChild(node)
			if err := b.walk(filepath.Join(dir, name), node, seen); err != nil {
				return err
			}
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read file %s: %w", name, err)
		}
		node.Kind = domain.KindPage
		node.Content = string(content)
		node.Fingerprint = domain.Fingerprint(node.Content)
		node.Title = firstHeading(node.Content)
		if node.Title == "" {
			node.Title = deriveTitle(name)
		}
		parent.AddChild(node)
	}

	return nil
}

// childPath joins a parent path with a normalized entry name.
// Names are lower-cased so path identity is case-insensitive; the
// extension is stripped from files only, directory names keep any dots.
func childPath(parentPath, name string, isDir bool) string {
	slug := strings.ToLower(name)
	if !isDir {
		slug = strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	if parentPath == "" {
		return slug
	}
	return parentPath + "/" + slug
}

// firstHeading returns the text of the first level-1 heading, if any.
func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// deriveTitle turns a file or directory name into a display title,
// e.g. "getting-started.md" becomes "Getting Started".
func deriveTitle(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
