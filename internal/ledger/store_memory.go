package ledger

import (
	"context"
	"sync"
)

type MemStore struct {
	mu      sync.RWMutex
	records []SaleRecord
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Append(ctx context.Context, records ...SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SaleRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
