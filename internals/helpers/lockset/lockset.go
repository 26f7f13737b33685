// Package lockset serializes work per logical key (room, resident, billing period)
// inside one process.
package lockset

import (
	"sort"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

type Set struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *Set {
	return &Set{locks: make(map[string]*entry)}
}

// Lock acquires every key in sorted order and returns the release func.
// Duplicate and empty keys are ignored. Sorted acquisition keeps two callers
// with overlapping key sets from deadlocking.
func (s *Set) Lock(keys ...string) func() {
	ks := normalize(keys)
	held := make([]*entry, 0, len(ks))
	for _, k := range ks {
		e := s.acquire(k)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				s.release(ks[i])
			}
		})
	}
}

// Len reports how many keys are currently held or awaited.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *Set) acquire(k string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.locks[k]
	if !ok {
		e = &entry{}
		s.locks[k] = e
	}
	e.refs++
	return e
}

func (s *Set) release(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.locks[k]
	if e == nil {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(s.locks, k)
	}
}

func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
