package navtable

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// ContentsHeading starts the ordering section of the local index file.
const ContentsHeading = "# Contents"

// itemPattern matches one contents list item: optional indentation, a
// list leader (-, * or "1.") and a markdown reference.
var itemPattern = regexp.MustCompile(`^( *)((\d+\.)|\*|-)\s*\[(.*?)\]\((.*?)\)\s*$`)

// ContentsItem is one parsed entry of the index file's contents listing.
type ContentsItem struct {
	// Level is the nesting depth, starting at 1 for unindented items.
	Level int

	// Title is the reference text. It overrides the derived title of the
	// entry it refers to.
	Title string

	// Reference is the repository-relative path being ordered, as
	// written in the listing (the file extension may be present).
	Reference string

	// Rank is the number of preceding items in the listing.
	Rank int
}

// ParseContents extracts the ordered items of the "# Contents" section
// of the index file. Returns nil when the file has no contents section.
// Malformed items fail with domain.ErrInvalidStructure.
func ParseContents(indexContent string) ([]ContentsItem, error) {
	lines := strings.Split(indexContent, "\n")

	start := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), ContentsHeading) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, nil
	}

	var items []ContentsItem
	// indents[i] is the indentation width that opened level i+1.
	var indents []int

	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "#") {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		match := itemPattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("%w: malformed contents item %q", domain.ErrInvalidStructure, line)
		}
		indent := len(match[1])

		if len(items) == 0 {
			if indent != 0 {
				return nil, fmt.Errorf(
					"%w: first contents item %q must not be indented",
					domain.ErrInvalidStructure, line,
				)
			}
			indents = []int{0}
		} else {
			top := indents[len(indents)-1]
			switch {
			case indent > top:
				indents = append(indents, indent)
			case indent < top:
				for len(indents) > 0 && indents[len(indents)-1] > indent {
					indents = indents[:len(indents)-1]
				}
				if len(indents) == 0 || indents[len(indents)-1] != indent {
					return nil, fmt.Errorf(
						"%w: contents item %q does not align with any parent",
						domain.ErrInvalidStructure, line,
					)
				}
			}
		}

		items = append(items, ContentsItem{
			Level:     len(indents),
			Title:     strings.TrimSpace(match[4]),
			Reference: strings.TrimSpace(match[5]),
			Rank:      len(items),
		})
	}

	return items, nil
}

// GenerateContents serialises the tree's ordering as a contents listing
// for the local index file, the repository-side counterpart of the
// navigation table. Page references carry the markdown extension.
func GenerateContents(tree *domain.Tree) string {
	var b strings.Builder
	b.WriteString(ContentsHeading)
	b.WriteString("\n")
	_ = tree.Root.Walk(func(n *domain.DocumentNode) error {
		ref := n.Path
		if n.IsPage() {
			ref += ".md"
		}
		indent := strings.Repeat("  ", n.Level-1)
		fmt.Fprintf(&b, "\n%s- [%s](%s)", indent, n.Title, ref)
		return nil
	})
	b.WriteString("\n")
	return b.String()
}
