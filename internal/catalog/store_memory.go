package catalog

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Product
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Product{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Put(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.Name] = p
	return nil
}

func (s *MemStore) Get(ctx context.Context, name string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[name]
	return p, ok, nil
}

func (s *MemStore) ListSortedByName(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
