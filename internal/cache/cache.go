package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// Cache is a TTL'd key-value cache for expensive streaming results, backed
// by badger. Entries expire on their own; Bust clears everything for an
// explicit invalidation. The aggregators themselves stay stateless — the
// serving layer owns this cache.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *logrus.Entry
}

func Open(dir string, ttl time.Duration, logger *logrus.Entry) (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, err
	}
	return &Cache{
		db:     db,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SummaryKey identifies one cached streaming pass.
func SummaryKey(path string, sampleSize int, freq string) string {
	return fmt.Sprintf("summary:%s:%d:%s", path, sampleSize, freq)
}

// Get unmarshals the cached value for key into out; found is false for a
// missing or expired entry.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v under key with the cache's TTL.
func (c *Cache) Set(key string, v interface{}) error {
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), val).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Bust drops every cached entry.
func (c *Cache) Bust() error {
	c.logger.Info("busting summary cache")
	return c.db.DropAll()
}
