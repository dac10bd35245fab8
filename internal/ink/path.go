package ink

import (
	"encoding/json"
	"fmt"
	"sync"
)

// SerializedPath is one committed stroke: press to release, with the
// tool triple that was current when the stroke started. Immutable once
// appended to a PathStore.
type SerializedPath struct {
	Tool   Tool    `json:"tool"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
	Points []Point `json:"points"`
}

// Valid reports whether the path would produce visible ink. A tap
// yields a single point and is never persisted.
func (p SerializedPath) Valid() bool {
	return len(p.Points) >= 2
}

// PathStore is the append-only ordered collection of committed strokes
// for one surface. Append order is chronological draw order, which is
// also visual paint order.
type PathStore struct {
	mu    sync.RWMutex
	paths []SerializedPath
}

func NewPathStore() *PathStore {
	return &PathStore{}
}

// Append adds a completed stroke. Paths with fewer than two points are
// rejected.
func (s *PathStore) Append(p SerializedPath) bool {
	if !p.Valid() {
		return false
	}
	s.mu.Lock()
	s.paths = append(s.paths, p)
	s.mu.Unlock()
	return true
}

// Undo removes the most recently appended path. No-op on an empty
// store. The caller is responsible for scheduling a full replay.
func (s *PathStore) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.paths) == 0 {
		return false
	}
	s.paths = s.paths[:len(s.paths)-1]
	return true
}

// Clear empties the store.
func (s *PathStore) Clear() {
	s.mu.Lock()
	s.paths = nil
	s.mu.Unlock()
}

// Load replaces the contents wholesale. Invalid paths are dropped.
func (s *PathStore) Load(paths []SerializedPath) {
	kept := make([]SerializedPath, 0, len(paths))
	for _, p := range paths {
		if p.Valid() {
			kept = append(kept, p)
		}
	}
	s.mu.Lock()
	s.paths = kept
	s.mu.Unlock()
}

func (s *PathStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// Paths returns a copy of the committed strokes in paint order.
func (s *PathStore) Paths() []SerializedPath {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SerializedPath, len(s.paths))
	copy(out, s.paths)
	return out
}

// Serialize produces the durable form. An empty store serializes to
// "[]", which is distinct from "no record exists".
func (s *PathStore) Serialize() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.paths) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s.paths)
	if err != nil {
		return "", fmt.Errorf("serialize paths: %w", err)
	}
	return string(data), nil
}

// ParsePaths decodes the durable form back into strokes. Callers treat
// an error as an empty store; a corrupt record is superseded on the
// next save rather than repaired.
func ParsePaths(data string) ([]SerializedPath, error) {
	if data == "" {
		return nil, nil
	}
	var paths []SerializedPath
	if err := json.Unmarshal([]byte(data), &paths); err != nil {
		return nil, fmt.Errorf("parse paths: %w", err)
	}
	return paths, nil
}
