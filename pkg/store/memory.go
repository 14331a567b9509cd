package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory implementation of Store for
// single-process deployments and tests
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Link
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Link)}
}

func (s *MemoryStore) SaveLink(link Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	s.m[link.ID] = link
	return nil
}

func (s *MemoryStore) GetLink(id string) (Link, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.m[id]
	if !ok {
		return Link{}, false, nil
	}
	return l, true, nil
}

func (s *MemoryStore) DeleteLink(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *MemoryStore) ListLinks(ownerID int64) ([]Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Link
	for _, l := range s.m {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
