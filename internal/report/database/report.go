package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/report/model"
)

const (
	detectorKeys = "detector:keys:"
	prefix       = "report:"
)

type FilterFn func(report model.Report) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) extractKey(key string) string {
	prefixPos := strings.Index(key, prefix)

	return key[prefixPos+len(prefix):]
}

// Detectors lists the detectors that have stored reports.
func (db *DB) Detectors() ([]string, error) {
	var keys []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(detectorKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, db.extractKey(string(k)))
		}
		return nil
	})

	return keys, err
}

func (db *DB) Store(ctx context.Context, report model.Report) error {
	return db.AppendMany(ctx, []model.Report{report})
}

func (db *DB) AppendMany(_ context.Context, reports []model.Report) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		keys, err := tx.CreateBucketIfNotExists([]byte(detectorKeys))
		if err != nil {
			return fmt.Errorf("unable create detectors bucket: %w", err)
		}
		for _, report := range reports {
			b, err := tx.CreateBucketIfNotExists([]byte(prefix + report.Detector))
			if err != nil {
				return fmt.Errorf("create bucket: %w", err)
			}
			bytes, err := json.Marshal(report)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(report.ID.String()), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
			if err := keys.Put([]byte(prefix+report.Detector), []byte{0x0}); err != nil {
				return fmt.Errorf("unable put to detectors bucket: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) Delete(_ context.Context, report model.Report) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + report.Detector))
		if b == nil {
			return nil
		}

		return b.Delete([]byte(report.ID.String()))
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

// FindAll returns the reports of every detector accepted by filter, oldest
// first. A nil filter accepts everything.
func (db *DB) FindAll(_ context.Context, filter FilterFn) ([]model.Report, error) {
	var list []model.Report
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		keys := tx.Bucket([]byte(detectorKeys))
		if keys == nil {
			return nil
		}
		return keys.ForEach(func(k, _ []byte) error {
			b := tx.Bucket(k)
			if b == nil {
				return nil
			}
			reports, err := decodeBucket(b, filter)
			if err != nil {
				return err
			}
			list = append(list, reports...)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sortByTime(list)
	return list, nil
}

func (db *DB) FindByDetector(_ context.Context, detector string, filter FilterFn) ([]model.Report, error) {
	var list []model.Report
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + detector))
		if b == nil {
			return nil
		}
		reports, err := decodeBucket(b, filter)
		list = reports
		return err
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sortByTime(list)
	return list, nil
}

func (db *DB) CountByDetector(_ context.Context, detector string) (int, error) {
	var n int
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + detector))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})

	return n, err
}

func decodeBucket(b *bolt.Bucket, filter FilterFn) ([]model.Report, error) {
	var list []model.Report
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		var r model.Report
		if err := json.Unmarshal(v, &r); err != nil {
			return nil, fmt.Errorf("report unmarshal error, %w", err)
		}
		if filter == nil || filter(r) {
			list = append(list, r)
		}
	}
	return list, nil
}

func sortByTime(list []model.Report) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
