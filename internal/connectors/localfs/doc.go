// Package localfs builds the local documentation tree from the
// repository's documentation directory.
//
// Directories become group nodes and markdown files become page nodes.
// The designated index file (index.md) becomes the tree's paired index
// document. When the index file carries a "# Contents" listing, the
// listed entries define sibling order and titles; unlisted entries
// follow alphabetically.
package localfs
