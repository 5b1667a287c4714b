package store

import (
	"context"
	"sync"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

// InMemoryStore keeps assessment records in memory. Used when no database
// path is configured and as the test double for the SQLite store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []entities.AssessmentRecord
}

// NewInMemoryStore creates an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Save appends one assessment record.
func (s *InMemoryStore) Save(ctx context.Context, rec entities.AssessmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *InMemoryStore) Recent(ctx context.Context, limit int) ([]entities.AssessmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]entities.AssessmentRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
