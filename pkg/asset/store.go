package asset

import "sync"

// store is a FIFO-bounded map of records.
type store struct {
	mu       sync.Mutex
	capacity int
	evict    int
	records  map[string]*Record
	order    []string
}

func newStore(capacity int) *store {
	s := &store{capacity: capacity}
	s.evict = max(capacity/5, 1)
	s.reset()
	return s
}

func (s *store) get(url string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[url]
	return r, ok
}

func (s *store) put(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.URL]; ok {
		s.records[r.URL] = r
		return
	}
	if len(s.records) >= s.capacity {
		s.evictLocked(s.evict)
	}
	s.records[r.URL] = r
	s.order = append(s.order, r.URL)
}

// trim evicts the oldest entries until at most capacity-evict remain and
// returns how many it removed.
func (s *store) trim() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	over := len(s.records) - (s.capacity - s.evict)
	if over <= 0 {
		return 0
	}
	return s.evictLocked(over)
}

func (s *store) evictLocked(n int) int {
	n = min(n, len(s.order))
	for _, url := range s.order[:n] {
		delete(s.records, url)
	}
	s.order = append(s.order[:0:0], s.order[n:]...)
	return n
}

func (s *store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
	s.order = nil
}
