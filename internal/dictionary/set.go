package dictionary

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Set is the shared, growing word set of a session.
// One loader goroutine adds words while any number of checkers read.
// Words are never removed.
type Set struct {
	mu    sync.RWMutex
	words map[string]struct{}

	version   atomic.Uint64
	ready     atomic.Bool
	readyOnce sync.Once
	readyCh   chan struct{}
}

// NewSet creates a Set holding words. Empty strings are ignored.
// Words are stored as given; callers normalize before adding.
func NewSet(words ...string) *Set {
	s := &Set{
		words:   make(map[string]struct{}, len(words)),
		readyCh: make(chan struct{}),
	}
	s.Add(words...)
	return s
}

// Add merges words into the set and returns how many were new.
// The version is bumped once per call that adds at least one word.
func (s *Set) Add(words ...string) int {
	if len(words) == 0 {
		return 0
	}

	added := 0
	s.mu.Lock()
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := s.words[w]; ok {
			continue
		}
		s.words[w] = struct{}{}
		added++
	}
	s.mu.Unlock()

	if added > 0 {
		s.version.Add(1)
	}
	return added
}

// Contains reports whether word is in the set.
func (s *Set) Contains(word string) bool {
	s.mu.RLock()
	_, ok := s.words[word]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of words.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Words returns a sorted copy of the words.
func (s *Set) Words() []string {
	s.mu.RLock()
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	s.mu.RUnlock()

	sort.Strings(words)
	return words
}

// Version changes whenever new words are added.
func (s *Set) Version() uint64 {
	return s.version.Load()
}

// MarkReady signals that the set may be used for checking. Idempotent.
func (s *Set) MarkReady() {
	s.readyOnce.Do(func() {
		s.ready.Store(true)
		close(s.readyCh)
	})
}

// Ready reports whether MarkReady has been called.
func (s *Set) Ready() bool {
	return s.ready.Load()
}

// ReadyC returns a channel closed once the set is ready.
func (s *Set) ReadyC() <-chan struct{} {
	return s.readyCh
}
