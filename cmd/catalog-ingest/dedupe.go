package main

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const bloomFPR = 0.001

// idSet remembers item IDs across all files. The bloom filter answers the
// common "never seen" case; the exact set resolves its false positives.
type idSet struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	seen   map[string]struct{}
}

func newIDSet(expected uint) *idSet {
	if expected == 0 {
		expected = 1
	}
	return &idSet{
		filter: bloom.NewWithEstimates(expected, bloomFPR),
		seen:   make(map[string]struct{}),
	}
}

// add records id and reports whether it was new.
func (s *idSet) add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestAndAddString(id) {
		if _, ok := s.seen[id]; ok {
			return false
		}
	}
	s.seen[id] = struct{}{}
	return true
}

func (s *idSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
