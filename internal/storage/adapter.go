package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Adapter implements the surface persistence semantics on top of a
// Store: upsert on save, absent-vs-empty on load, and the
// backward-compatibility fallback for records written before panels
// existed (a lookup of book:chapter:panel that finds nothing retries
// as book:chapter).
type Adapter struct {
	store Store
}

func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Save upserts the record for key. Callers treat it as fire-and-forget
// but it completes synchronously, so a save followed by a load of the
// same key observes the saved data.
func (a *Adapter) Save(ctx context.Context, key, canvasData string, height float64) error {
	rec := SurfaceRecord{
		ID:           key,
		CanvasData:   canvasData,
		CanvasHeight: height,
		LastModified: time.Now(),
	}
	if err := a.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load returns the canvas data and height for key, with ok=false when
// no record exists under the key or its panel-less fallback.
func (a *Adapter) Load(ctx context.Context, key string) (string, float64, bool, error) {
	rec, err := a.store.Get(ctx, key)
	if errors.Is(err, ErrNoRecord) {
		fallback, hasPanel := stripPanel(key)
		if !hasPanel {
			return "", 0, false, nil
		}
		rec, err = a.store.Get(ctx, fallback)
		if errors.Is(err, ErrNoRecord) {
			return "", 0, false, nil
		}
	}
	if err != nil {
		return "", 0, false, fmt.Errorf("load %s: %w", key, err)
	}
	return rec.CanvasData, rec.CanvasHeight, true, nil
}

// Delete removes the record for key. Absent records are a no-op.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	return a.store.Delete(ctx, key)
}

// List returns every persisted surface record, for backup export.
func (a *Adapter) List(ctx context.Context) ([]SurfaceRecord, error) {
	return a.store.List(ctx)
}

// Import writes a record received from a backup. Last writer wins;
// there is no merge.
func (a *Adapter) Import(ctx context.Context, rec SurfaceRecord) error {
	return a.store.Put(ctx, rec)
}

// stripPanel drops the panel discriminator from a three-segment key.
func stripPanel(key string) (string, bool) {
	if strings.Count(key, ":") < 2 {
		return key, false
	}
	return key[:strings.LastIndex(key, ":")], true
}
