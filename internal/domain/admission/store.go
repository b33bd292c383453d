package admission

import "sync"

// Store is an in-memory admission table. It backs the memory repositories so
// the quality checks, enrichment pass and reporting catalog can run against
// fixture data without a live database. IDs are assigned monotonically the
// way the identity column would.
type Store struct {
	mu     sync.RWMutex
	rows   []*Admission
	nextID int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends rows, assigning each an id, and returns the count added.
func (s *Store) Add(rows ...*Admission) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		r.ID = s.nextID
		s.nextID++
		s.rows = append(s.rows, r)
	}
	return len(rows)
}

// All returns the rows in insertion order. The slice is a copy; the row
// pointers are shared, matching the single-writer-then-readers lifecycle.
func (s *Store) All() []*Admission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Admission, len(s.rows))
	copy(out, s.rows)
	return out
}

// Mutate runs fn over the rows under the write lock. The enrichment pass
// uses this for its one-time in-place update.
func (s *Store) Mutate(fn func(rows []*Admission)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.rows)
}

// Len returns the row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
