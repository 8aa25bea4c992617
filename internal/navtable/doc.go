// Package navtable is the navigation table codec: a lossless mapping
// between a documentation tree and the flat, level-tagged markdown table
// embedded in the index topic.
//
// The remote documentation server has no hierarchy concept, so the tree
// is serialised as ordered rows of (level, path, navlink). Nesting is
// implicit: a row at level L is a child of the most recent row at level
// L-1. Decoding reconstructs the tree with an ancestor stack and rejects
// malformed tables instead of silently repairing them.
//
// The package also serialises the "# Contents" listing used in the local
// index file, which encodes the same ordering for the repository side.
package navtable
