package driven

import "context"

// DocServer is the remote documentation server.
// The server has no hierarchy concept: it stores flat topics inside one
// category, addressed by URL. The discourse connector implements this.
type DocServer interface {
	// Retrieve returns the raw content of a topic by URL or id.
	// Implementations must follow redirects, since the server may have
	// changed a topic's address. Returns domain.ErrNotFound (wrapped)
	// when the topic does not exist.
	Retrieve(ctx context.Context, urlOrID string) (string, error)

	// Create creates a new topic under the category and returns its URL.
	// Topics are created unlisted so partially-migrated structures are
	// not exposed before the whole plan completes.
	Create(ctx context.Context, category int, title, content string) (string, error)

	// Update overwrites the topic's content at the given URL.
	Update(ctx context.Context, url, content string) error

	// Delete removes the topic at the given URL. Deleting an already
	// absent topic is not an error.
	Delete(ctx context.Context, url string) error
}
