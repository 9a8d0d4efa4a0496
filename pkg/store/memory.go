package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok || rec.IsExpired() {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		if !rec.IsExpired() {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, rec := range s.records {
		if rec.IsExpired() {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Close() error { return nil }

func newestFirst(recs []*Record, limit int) []*Record {
	slices.SortFunc(recs, func(a, b *Record) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

var _ Store = (*MemoryStore)(nil)
