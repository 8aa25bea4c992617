package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docbridge/internal/core/domain"
	"github.com/custodia-labs/docbridge/internal/core/ports/driven"
)

// Ensure DocServer implements the interface.
var _ driven.DocServer = (*DocServer)(nil)

// DocServer is an in-memory documentation server.
type DocServer struct {
	mu           sync.RWMutex
	topics       map[string]string
	nextID       int
	retrieveErrs map[string]error
	createErrs   map[string]error
}

// NewDocServer creates an empty in-memory server.
func NewDocServer() *DocServer {
	return &DocServer{
		topics:       make(map[string]string),
		nextID:       1,
		retrieveErrs: make(map[string]error),
		createErrs:   make(map[string]error),
	}
}

// Retrieve returns a topic's content.
func (s *DocServer) Retrieve(_ context.Context, urlOrID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.retrieveErrs[urlOrID]; ok {
		return "", err
	}
	content, ok := s.topics[urlOrID]
	if !ok {
		return "", fmt.Errorf("%w: topic %s", domain.ErrNotFound, urlOrID)
	}
	return content, nil
}

// Create stores a new topic and returns its URL.
func (s *DocServer) Create(_ context.Context, _ int, title, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.createErrs[title]; ok {
		delete(s.createErrs, title)
		return "", err
	}

	url := fmt.Sprintf("/t/topic-%d/%d", s.nextID, s.nextID)
	s.nextID++
	s.topics[url] = content
	return url, nil
}

// Update overwrites a topic's content.
func (s *DocServer) Update(_ context.Context, url, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.topics[url]; !ok {
		return fmt.Errorf("%w: topic %s", domain.ErrNotFound, url)
	}
	s.topics[url] = content
	return nil
}

// Delete removes a topic. Absent topics succeed, like the real server.
func (s *DocServer) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.topics, url)
	return nil
}

// SetTopic seeds a topic at a fixed URL.
func (s *DocServer) SetTopic(url, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[url] = content
}

// FailCreate makes the next create of a topic with the given title
// return err. Later creates of the same title succeed.
func (s *DocServer) FailCreate(title string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErrs[title] = err
}

// FailRetrieve makes retrieval of the given URL return err.
func (s *DocServer) FailRetrieve(url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retrieveErrs[url] = err
}

// Topic returns a topic's content and whether it exists.
func (s *DocServer) Topic(url string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.topics[url]
	return content, ok
}

// Len returns the number of stored topics.
func (s *DocServer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.topics)
}
