package crawler

import "sync"

// VisitSet tracks normalized URLs that have been dequeued at least once.
// It only grows during a run. Check-and-mark is a single locked operation
// so concurrent fetchers cannot fetch the same URL twice.
type VisitSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisitSet returns an empty visited set.
func NewVisitSet() *VisitSet {
	return &VisitSet{seen: make(map[string]struct{})}
}

// Contains reports whether url has already been visited.
func (s *VisitSet) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[url]
	return ok
}

// MarkIfNew stores url if it has not been seen before and returns true.
func (s *VisitSet) MarkIfNew(url string) bool {
	if url == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Len returns the number of visited URLs.
func (s *VisitSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
