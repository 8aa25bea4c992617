package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
	"github.com/custodia-labs/docbridge/internal/logger"
	"github.com/custodia-labs/docbridge/internal/navtable"
)

// RemoteTreeBuilder recovers the remote hierarchy from the flat topic
// set: it fetches the index topic, decodes the embedded navigation
// table, and fetches each referenced topic to compute fingerprints.
type RemoteTreeBuilder struct {
	server driven.DocServer
}

// NewRemoteTreeBuilder creates a remote tree builder.
func NewRemoteTreeBuilder(server driven.DocServer) *RemoteTreeBuilder {
	return &RemoteTreeBuilder{server: server}
}

// Build produces the remote tree snapshot for the given index topic.
// An unreachable index topic is fatal (domain.ErrRemoteUnavailable):
// proceeding against an empty remote tree would plan a mass delete on a
// transient outage. A single page fetch failure only degrades that node
// to "content unknown", which the reconciler treats as changed.
func (b *RemoteTreeBuilder) Build(ctx context.Context, indexURL string) (*domain.Tree, error) {
	body, err := b.server.Retrieve(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve index topic %s: %v", domain.ErrRemoteUnavailable, indexURL, err)
	}

	content, table := navtable.SplitBody(body)

	tree := domain.NewTree()
	if table != "" {
		tree, err = navtable.Decode(table)
		if err != nil {
			return nil, fmt.Errorf("decode navigation table: %w", err)
		}
	}

	tree.Index.Content = content
	tree.Index.Fingerprint = domain.Fingerprint(content)
	tree.Index.RemoteID = indexURL

	for _, node := range tree.Flatten() {
		// Pages referenced by placeholder have no topic to fetch yet.
		if !node.IsPage() || node.RemoteID == "" {
			continue
		}
		pageContent, err := b.server.Retrieve(ctx, node.RemoteID)
		if err != nil {
			// Content unknown: leave the fingerprint empty so the
			// reconciler conservatively assumes the page changed.
			logger.Warn("Could not fetch %s (%s): %v", node.Path, node.RemoteID, err)
			continue
		}
		node.Content = pageContent
		node.Fingerprint = domain.Fingerprint(pageContent)
	}

	return tree, nil
}
