package storage

import (
	"context"
	"errors"
	"time"
)

// SurfaceRecord is the persisted state of one drawing surface. One
// record exists per surface key; every save overwrites the previous
// record. CanvasData holds the serialized stroke sequence as a string,
// where "[]" is an existing-but-empty surface, distinct from the
// record being absent.
type SurfaceRecord struct {
	ID           string    `json:"id"`
	CanvasData   string    `json:"canvasData"`
	CanvasHeight float64   `json:"canvasHeight"`
	LastModified time.Time `json:"lastModified"`
}

// ErrNoRecord is returned by Get when no record exists for a key.
var ErrNoRecord = errors.New("storage: no record")

// Store is the key-value persistence boundary. Keys are opaque strings
// formed as book:chapter or book:chapter:panel.
type Store interface {
	Put(ctx context.Context, rec SurfaceRecord) error
	Get(ctx context.Context, id string) (SurfaceRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]SurfaceRecord, error)
	Close() error
}
