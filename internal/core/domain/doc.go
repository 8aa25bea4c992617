// Package domain defines the core business entities for docbridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentNode / Tree: The document hierarchy shared by the local
//     and remote tree builders
//   - Action: One planned or executed operation in an action plan
//   - RunInputs: Resolved configuration values for a single run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
