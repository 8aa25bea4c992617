package localfs

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/navtable"
)

// applyContents orders the tree according to the index file's contents
// listing. Listed entries come first in listed order and take their
// titles from the listing; unlisted entries keep alphabetical order.
func applyContents(tree *domain.Tree, items []navtable.ContentsItem) error {
	if len(items) == 0 {
		return nil
	}

	ranks := make(map[string]int)
	// ancestors[i] is the path of the last item seen at level i+1; the
	// empty string at index 0 stands for the documentation root.
	ancestors := []string{""}

	for _, item := range items {
		ref := normalizeReference(item.Reference)
		node := tree.Lookup(ref)
		if node == nil {
			return fmt.Errorf(
				"%w: contents item %q does not match any file or directory",
				domain.ErrInvalidStructure, item.Reference,
			)
		}

		parent := ancestors[item.Level-1]
		if parentOf(ref) != parent {
			return fmt.Errorf(
				"%w: contents item %q is nested outside its directory %q",
				domain.ErrInvalidStructure, item.Reference, parent,
			)
		}
		if _, dup := ranks[ref]; dup {
			return fmt.Errorf(
				"%w: contents item %q listed twice", domain.ErrInvalidStructure, item.Reference,
			)
		}

		ranks[ref] = item.Rank
		node.Title = item.Title
		ancestors = append(ancestors[:item.Level], ref)
	}

	reorder(tree.Root, ranks)
	return nil
}

// reorder sorts each sibling set: listed entries by rank, then unlisted
// entries in their existing alphabetical order.
func reorder(node *domain.DocumentNode, ranks map[string]int) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		return rankOf(node.Children[i], ranks) < rankOf(node.Children[j], ranks)
	})
	for _, child := range node.Children {
		reorder(child, ranks)
	}
}

func rankOf(node *domain.DocumentNode, ranks map[string]int) int {
	if rank, ok := ranks[domain.NormalizePath(node.Path)]; ok {
		return rank
	}
	return math.MaxInt
}

// normalizeReference maps a contents reference (as written in the index
// file, possibly with the markdown extension) to a logical path.
func normalizeReference(ref string) string {
	ref = strings.TrimSuffix(ref, Extension)
	return domain.NormalizePath(ref)
}

func parentOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}
