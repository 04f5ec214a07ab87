package options

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// Store persists option records. Set replaces the whole value.
type Store interface {
	Get(ctx context.Context, name string) (*Record, error)
	Set(ctx context.Context, name string, value []byte, updatedBy int64) error
}

// MemoryStore keeps records in process. It backs the service when no database is
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	nextID  int64
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Value = append([]byte(nil), rec.Value...)
	return &rec, nil
}

func (s *MemoryStore) Set(_ context.Context, name string, value []byte, updatedBy int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	rec, ok := s.records[name]
	if !ok {
		s.nextID++
		rec = Record{ID: s.nextID, Name: name, CreatedAt: now}
	}
	rec.Value = append([]byte(nil), value...)
	rec.Version++
	rec.UpdatedBy = sql.NullInt64{Int64: updatedBy, Valid: updatedBy != 0}
	rec.UpdatedAt = now
	s.records[name] = rec
	return nil
}
