package storage

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and for running without a
// database file.
type MemStore struct {
	mu       sync.RWMutex
	recs     map[string]SurfaceRecord
	chapters map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		recs:     make(map[string]SurfaceRecord),
		chapters: make(map[string]string),
	}
}

func (s *MemStore) Put(_ context.Context, rec SurfaceRecord) error {
	s.mu.Lock()
	s.recs[rec.ID] = rec
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Get(_ context.Context, id string) (SurfaceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return SurfaceRecord{}, ErrNoRecord
	}
	return rec, nil
}

func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.recs, id)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) List(_ context.Context) ([]SurfaceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]SurfaceRecord, 0, len(s.recs))
	for _, rec := range s.recs {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *MemStore) Close() error { return nil }

func (s *MemStore) GetChapter(_ context.Context, ref string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.chapters[ref]
	return text, ok, nil
}

func (s *MemStore) PutChapter(_ context.Context, ref, text string) error {
	s.mu.Lock()
	s.chapters[ref] = text
	s.mu.Unlock()
	return nil
}
