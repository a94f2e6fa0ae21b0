// Package memory provides an in-memory Store with the same atomicity
// semantics as the Redis implementation. It backs unit tests and local
// single-process runs; nothing persists beyond the process.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/JakeFAU/crawl-frontier/internal/store"
)

// Store keeps every collection behind one mutex, making each operation
// atomic the way a single Redis command is.
type Store struct {
	mu     sync.Mutex
	sets   map[string]map[string]struct{}
	lists  map[string][][]byte
	sorted map[string][]sortedEntry
}

type sortedEntry struct {
	score  float64
	member []byte
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		sets:   make(map[string]map[string]struct{}),
		lists:  make(map[string][][]byte),
		sorted: make(map[string][]sortedEntry),
	}
}

// SetAdd implements store.Store.
func (s *Store) SetAdd(_ context.Context, key string, member string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	if _, seen := set[member]; seen {
		return false, nil
	}
	set[member] = struct{}{}
	return true, nil
}

// ListPushTail implements store.Store.
func (s *Store) ListPushTail(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append(s.lists[key], append([]byte(nil), value...))
	return nil
}

// ListPopHead implements store.Store.
func (s *Store) ListPopHead(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[key]
	if len(list) == 0 {
		return nil, store.ErrNoEntry
	}
	head := list[0]
	s.lists[key] = list[1:]
	return head, nil
}

// ListPopTail implements store.Store.
func (s *Store) ListPopTail(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[key]
	if len(list) == 0 {
		return nil, store.ErrNoEntry
	}
	tail := list[len(list)-1]
	s.lists[key] = list[:len(list)-1]
	return tail, nil
}

// ListLen implements store.Store.
func (s *Store) ListLen(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.lists[key])), nil
}

// SortedAdd implements store.Store. A byte-identical member only has its
// score updated, matching Redis ZADD.
func (s *Store) SortedAdd(_ context.Context, key string, score float64, member []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.sorted[key]
	for i := range entries {
		if bytes.Equal(entries[i].member, member) {
			entries[i].score = score
			return nil
		}
	}
	s.sorted[key] = append(entries, sortedEntry{
		score:  score,
		member: append([]byte(nil), member...),
	})
	return nil
}

// SortedPopMax implements store.Store. Ties on score break by member
// bytes, the same order Redis uses.
func (s *Store) SortedPopMax(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.sorted[key]
	if len(entries) == 0 {
		return nil, store.ErrNoEntry
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score < entries[j].score
		}
		return bytes.Compare(entries[i].member, entries[j].member) < 0
	})
	max := entries[len(entries)-1]
	s.sorted[key] = entries[:len(entries)-1]
	return max.member, nil
}

// SortedLen implements store.Store.
func (s *Store) SortedLen(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sorted[key])), nil
}

// Delete implements store.Store.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, key)
	delete(s.lists, key)
	delete(s.sorted, key)
	return nil
}
