package idempotency

import (
	"context"
	"sync"

	"github.com/sahakari-society/members-console/internal/ports/out/idempotency"
)

// DefaultMaxEntries bounds the number of remembered command responses.
const DefaultMaxEntries = 1024

// Store is an in-memory implementation of idempotency.Store.
// Once full it forgets the oldest fingerprint first. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	max   int
	m     map[idempotency.Fingerprint]idempotency.Record
	order []idempotency.Fingerprint
}

func NewStore() *Store {
	return NewStoreWithLimit(DefaultMaxEntries)
}

func NewStoreWithLimit(max int) *Store {
	if max < 1 {
		max = 1
	}
	return &Store{
		max: max,
		m:   make(map[idempotency.Fingerprint]idempotency.Record),
	}
}

func (s *Store) Get(ctx context.Context, fp idempotency.Fingerprint) (idempotency.Record, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[fp]
	return rec, ok, nil
}

func (s *Store) Put(ctx context.Context, fp idempotency.Fingerprint, rec idempotency.Record) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[fp]; !exists {
		s.order = append(s.order, fp)
	}
	s.m[fp] = rec
	for len(s.order) > s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.m, oldest)
	}
	return nil
}

// Len reports the number of remembered fingerprints.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
