// Package connectors groups the concrete clients docbridge talks to:
// the local filesystem tree builder, the Discourse documentation server
// and the GitHub repository host. Each subpackage implements the
// corresponding driven port or local source interface.
package connectors
