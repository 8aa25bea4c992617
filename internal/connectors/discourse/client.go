package discourse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RequestRate is the proactive throttle in requests per second.
	// Discourse admin API keys are limited well above this.
	RequestRate = 2.0
)

// topicIDPattern extracts the numeric topic id from a topic URL path
// such as /t/getting-started/123 or a bare id.
var topicIDPattern = regexp.MustCompile(`(\d+)/?$`)

// Ensure Client implements the interface.
var _ driven.DocServer = (*Client)(nil)

// Client is the Discourse documentation server client.
type Client struct {
	base     *url.URL
	apiKey   string
	username string
	http     *http.Client
	limiter  *rate.Limiter
}

// New creates a Discourse client for the given forum base URL.
func New(baseURL, apiKey, username string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	return &Client{
		base:     base,
		apiKey:   apiKey,
		username: username,
		http:     &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Limit(RequestRate), 1),
	}, nil
}

// Retrieve returns the raw content of a topic by URL or id.
// The underlying HTTP client follows redirects, so topics whose address
// changed since the table was published still resolve.
func (c *Client) Retrieve(ctx context.Context, urlOrID string) (string, error) {
	id, err := topicID(urlOrID)
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, http.MethodGet, "/raw/"+id, nil)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("%w: topic %s", domain.ErrNotFound, urlOrID)
		}
		return "", err
	}
	return string(body), nil
}

// Create creates a new unlisted topic under the category and returns
// its URL. Unlisted creation keeps partially-migrated structures out of
// sight until the whole plan completes.
func (c *Client) Create(ctx context.Context, category int, title, content string) (string, error) {
	payload := map[string]any{
		"title":        title,
		"raw":          content,
		"category":     category,
		"unlist_topic": true,
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/posts.json", payload)
	if err != nil {
		// Discourse answers 422 for every validation failure (title too
		// short, body too long, ...); only a reused title means the
		// topic already exists.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 422 &&
			strings.Contains(strings.ToLower(apiErr.Message), "already been used") {
			return "", fmt.Errorf("%w: topic %q", domain.ErrAlreadyExists, title)
		}
		return "", err
	}

	var created struct {
		TopicID   int    `json:"topic_id"`
		TopicSlug string `json:"topic_slug"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return fmt.Sprintf("/t/%s/%d", created.TopicSlug, created.TopicID), nil
}

// Update overwrites the topic's first post with new content.
func (c *Client) Update(ctx context.Context, topicURL, content string) error {
	id, err := topicID(topicURL)
	if err != nil {
		return err
	}

	// The raw content lives on the topic's first post.
	body, err := c.do(ctx, http.MethodGet, "/t/"+id+".json", nil)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%w: topic %s", domain.ErrNotFound, topicURL)
		}
		return err
	}
	var topic struct {
		PostStream struct {
			Posts []struct {
				ID int `json:"id"`
			} `json:"posts"`
		} `json:"post_stream"`
	}
	if err := json.Unmarshal(body, &topic); err != nil {
		return fmt.Errorf("decode topic response: %w", err)
	}
	if len(topic.PostStream.Posts) == 0 {
		return fmt.Errorf("%w: topic %s has no posts", domain.ErrNotFound, topicURL)
	}

	payload := map[string]any{
		"post": map[string]any{
			"raw":         content,
			"edit_reason": "Documentation update",
		},
	}
	_, err = c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/posts/%d.json", topic.PostStream.Posts[0].ID), payload)
	return err
}

// Delete removes the topic. Deleting an already absent topic succeeds,
// so retried runs converge.
func (c *Client) Delete(ctx context.Context, topicURL string) error {
	id, err := topicID(topicURL)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodDelete, "/t/"+id+".json", nil)
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// do performs one authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target := c.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Api-Username", c.username)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
			URL:        target,
		}
	}
	return data, nil
}

// doJSON performs one request with a JSON payload.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(encoded))
}

// topicID extracts the numeric topic id from a topic URL or a bare id.
func topicID(urlOrID string) (string, error) {
	trimmed := strings.TrimSpace(urlOrID)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Path != "" {
		trimmed = parsed.Path
	}
	match := topicIDPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", fmt.Errorf("no topic id in %q", urlOrID)
	}
	return match[1], nil
}
