package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketSurfaces = "surfaces"
	bucketChapters = "chapters"
)

// BoltStore persists surface records and the chapter text cache in a
// single-file bbolt database, one bucket per concern.
type BoltStore struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketSurfaces, bucketChapters} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Put(ctx context.Context, rec SurfaceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSurfaces)).Put([]byte(rec.ID), data)
	})
}

func (s *BoltStore) Get(ctx context.Context, id string) (SurfaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return SurfaceRecord{}, err
	}
	var rec SurfaceRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSurfaces)).Get([]byte(id))
		if v == nil {
			return ErrNoRecord
		}
		if err := json.Unmarshal(v, &rec); err != nil {
			// A corrupt envelope reads as an empty surface; the next
			// save supersedes it.
			log.Printf("[STORE] corrupt record %q: %v", id, err)
			rec = SurfaceRecord{ID: id}
		}
		return nil
	})
	return rec, err
}

func (s *BoltStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSurfaces)).Delete([]byte(id))
	})
}

func (s *BoltStore) List(ctx context.Context) ([]SurfaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var recs []SurfaceRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSurfaces)).ForEach(func(k, v []byte) error {
			var rec SurfaceRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				log.Printf("[STORE] skipping corrupt record %q: %v", k, err)
				return nil
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

// GetChapter returns cached chapter text, keyed by reference like
// "john:3".
func (s *BoltStore) GetChapter(ctx context.Context, ref string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var text string
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketChapters)).Get([]byte(ref))
		if v != nil {
			text, ok = string(v), true
		}
		return nil
	})
	return text, ok, err
}

func (s *BoltStore) PutChapter(ctx context.Context, ref, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketChapters)).Put([]byte(ref), []byte(text))
	})
}
