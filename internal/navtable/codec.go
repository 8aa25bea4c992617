package navtable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/docbridge/internal/core/domain"
)

// Marker starts the navigation section of the index topic body.
// Everything before it is free-form index content; everything after it
// is the table.
const Marker = "# Navigation"

const tableHeader = "| Level | Path | Navlink |\n| -- | -- | -- |"

var (
	rowPattern    = regexp.MustCompile(`^\s*\|\s*(\d+)\s*\|\s*([\w./-]+)\s*\|\s*\[(.*?)\]\s*\((.*?)\)\s*\|\s*$`)
	headerPattern = regexp.MustCompile(`(?i)^\s*\|\s*level\s*\|\s*path\s*\|\s*navlink\s*\|\s*$`)
	fillerPattern = regexp.MustCompile(`^\s*\|\s*-+\s*\|\s*-+\s*\|\s*-+\s*\|\s*$`)
)

// Row is one decoded navigation table row.
type Row struct {
	// Level is the nesting depth, starting at 1 for top-level entries.
	Level int

	// Path is the logical path of the entry.
	Path string

	// Title is the navlink text.
	Title string

	// Link is the navlink target: empty for groups, the topic URL for
	// created pages, or a path placeholder for pages not yet created.
	Link string
}

// Encode serialises the tree as a navigation table, one row per node in
// depth-first sibling order, excluding the root and the index document.
func Encode(tree *domain.Tree) string {
	var b strings.Builder
	b.WriteString(tableHeader)
	_ = tree.Root.Walk(func(n *domain.DocumentNode) error {
		link := ""
		if n.IsPage() {
			link = n.RemoteID
			if link == "" {
				// Placeholder until the topic is created.
				link = "/" + n.Path
			}
		}
		fmt.Fprintf(&b, "\n| %d | %s | [%s](%s) |", n.Level, n.Path, n.Title, link)
		return nil
	})
	b.WriteString("\n")
	return b.String()
}

// SplitBody separates an index topic body into the content before the
// navigation marker and the table text after it. The table text is empty
// when the body has no navigation section.
func SplitBody(body string) (content, table string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == Marker {
			content = strings.TrimRight(strings.Join(lines[:i], "\n"), "\n")
			table = strings.Join(lines[i+1:], "\n")
			return content, table
		}
	}
	return strings.TrimRight(body, "\n"), ""
}

// Compose joins index content and the regenerated table back into a
// topic body. Used after structural changes invalidate the published
// table.
func Compose(content string, tree *domain.Tree) string {
	content = strings.TrimRight(content, "\n")
	return content + "\n\n" + Marker + "\n\n" + Encode(tree)
}

// ParseRows decodes the table text into rows, in order. Header and
// filler lines are skipped; anything else that is not a well-formed row
// fails with domain.ErrInvalidTable.
func ParseRows(table string) ([]Row, error) {
	var rows []Row
	for _, line := range strings.Split(table, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if headerPattern.MatchString(line) || fillerPattern.MatchString(line) {
			continue
		}
		match := rowPattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("%w: malformed row %q", domain.ErrInvalidTable, line)
		}
		level, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("%w: bad level in row %q", domain.ErrInvalidTable, line)
		}
		rows = append(rows, Row{
			Level: level,
			Path:  match[2],
			Title: strings.TrimSpace(match[3]),
			Link:  strings.TrimSpace(match[4]),
		})
	}
	return rows, nil
}

// Decode reconstructs a tree from table text. Content and fingerprints
// are not representable in the table; the caller re-fetches them from
// the server rather than inventing them.
func Decode(table string) (*domain.Tree, error) {
	rows, err := ParseRows(table)
	if err != nil {
		return nil, err
	}

	tree := domain.NewTree()
	// ancestors[i] is the most recent open node at level i.
	ancestors := []*domain.DocumentNode{tree.Root}
	seen := make(map[string]bool)

	for i, row := range rows {
		if row.Level < 1 {
			return nil, fmt.Errorf("%w: row %q has level below 1", domain.ErrInvalidTable, row.Path)
		}
		if i == 0 && row.Level != 1 {
			return nil, fmt.Errorf("%w: first row %q must be level 1", domain.ErrInvalidTable, row.Path)
		}
		if row.Level > len(ancestors) {
			return nil, fmt.Errorf(
				"%w: row %q jumps from level %d to %d",
				domain.ErrInvalidTable, row.Path, len(ancestors)-1, row.Level,
			)
		}

		key := domain.NormalizePath(row.Path)
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate path %q", domain.ErrInvalidTable, row.Path)
		}
		seen[key] = true

		parent := ancestors[row.Level-1]
		if parent != tree.Root && !strings.HasPrefix(key, domain.NormalizePath(parent.Path)+"/") {
			return nil, fmt.Errorf(
				"%w: row %q does not extend its parent %q",
				domain.ErrInvalidTable, row.Path, parent.Path,
			)
		}
		if parent.IsPage() {
			return nil, fmt.Errorf(
				"%w: row %q is nested under page %q",
				domain.ErrInvalidTable, row.Path, parent.Path,
			)
		}

		node := &domain.DocumentNode{
			Path:  row.Path,
			Title: row.Title,
			Kind:  domain.KindGroup,
		}
		if row.Link != "" {
			node.Kind = domain.KindPage
			// A placeholder navlink (the page's own path) marks a page
			// whose topic was never created; it has no remote address.
			if domain.NormalizePath(row.Link) != key {
				node.RemoteID = row.Link
			}
		}
		parent.AddChild(node)

		// Entries deeper than this row are closed now.
		ancestors = append(ancestors[:row.Level], node)
	}

	return tree, nil
}
