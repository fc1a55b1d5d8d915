package db

import (
	"context"
	"sync"

	"puissance4/games"
)

// MemoryStore keeps records in process memory. They are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []ScoreRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, rec ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) Summary(ctx context.Context) (games.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary games.Summary
	for _, rec := range s.records {
		summary.Add(rec.tally())
	}
	return summary, nil
}

// Records returns a copy of every record, oldest first. The ScoreStore
// interface has no listing; this is for tests and local inspection.
func (s *MemoryStore) Records() []ScoreRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ScoreRecord(nil), s.records...)
}

func (s *MemoryStore) Close() error {
	return nil
}
