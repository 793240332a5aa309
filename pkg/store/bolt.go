package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	bolt "go.etcd.io/bbolt"

	"github.com/umputun/newsbot/pkg/domain"
)

const recordsBucket = "source_records"

// BoltStore keeps source records in a bbolt file, one key per source
type BoltStore struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the bolt file and makes sure the bucket exists
func NewBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt path is empty")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", recordsBucket, err)
	}
	return &BoltStore{db: db}, nil
}

// LastTitle returns the stored title for the source. Storage errors are logged and reported as absence.
func (s *BoltStore) LastTitle(_ context.Context, id domain.SourceID) (string, bool) {
	var rec domain.SourceRecord
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(recordsBucket)).Get([]byte(id))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("unmarshal record %s: %w", id, err)
		}
		found = true
		return nil
	})
	if err != nil {
		lgr.Printf("[WARN] failed to get last title for %s: %v", id, err)
		return "", false
	}
	return rec.LastTitle, found
}

// CompareAndSet replaces the stored title if it differs from the given one and reports whether it did.
// Read and write happen in one read-write transaction, bolt allows only one of those at a time.
func (s *BoltStore) CompareAndSet(_ context.Context, id domain.SourceID, title string) (bool, error) {
	var changed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(recordsBucket))
		if data := bkt.Get([]byte(id)); data != nil {
			var rec domain.SourceRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("unmarshal record %s: %w", id, err)
			}
			if rec.LastTitle == title {
				return nil
			}
		}

		data, err := json.Marshal(domain.SourceRecord{Source: id, LastTitle: title, UpdatedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", id, err)
		}
		if err := bkt.Put([]byte(id), data); err != nil {
			return fmt.Errorf("put record %s: %w", id, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("compare and set %s: %w", id, err)
	}
	return changed, nil
}

// Records returns all stored source records ordered by source id
func (s *BoltStore) Records(_ context.Context) ([]domain.SourceRecord, error) {
	var res []domain.SourceRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(recordsBucket)).ForEach(func(k, v []byte) error {
			var rec domain.SourceRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshal record %s: %w", string(k), err)
			}
			res = append(res, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get source records: %w", err)
	}
	return res, nil
}

// Close closes the bolt file
func (s *BoltStore) Close() error {
	return s.db.Close()
}
