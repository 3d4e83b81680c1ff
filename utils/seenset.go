package utils

import "sync"

// SeenSet remembers keys and counts how many repeats it turned away
type SeenSet[K comparable] struct {
	mu      sync.Mutex
	seen    map[K]struct{}
	repeats int
}

func NewSeenSet[K comparable]() *SeenSet[K] {
	return &SeenSet[K]{seen: make(map[K]struct{})}
}

// Add reports whether key is new
func (s *SeenSet[K]) Add(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		s.repeats++
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Count returns the number of distinct keys
func (s *SeenSet[K]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Repeats returns how many Add calls were rejected
func (s *SeenSet[K]) Repeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repeats
}
