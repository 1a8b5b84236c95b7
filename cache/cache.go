// Package cache persists parameter sweeps.
//
// Every sweep sample is an invocation of an external physical model, so a
// full sweep is expensive and worth keeping: re-matching the same cascade
// against a different measured target, or a different tolerance, should
// not cost a second round of evaluations. Sweeps are keyed by a structural
// hash of the scan request and stored in bbolt, with an LRU layer in front.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/deltafit/params"
	"go.etcd.io/bbolt"
)

// SweepRecord is the stored form of one parameter sweep: the sampled
// mixing ratios and the observable the external model produced for each.
type SweepRecord struct {
	Deltas      []float64 `json:"deltas"`
	Observables []float64 `json:"observables"`
}

// Key hashes any (hashable) scan request description to a cache key.
func Key(v any) (uint64, error) {
	return hashstructure.Hash(v, hashstructure.FormatV2, nil)
}

// LastSweepTTLCache holds the most recent sweep per caller-chosen tag,
// for cheap short-term re-matching without touching disk.
var LastSweepTTLCache = ttlcache.New[string, *SweepRecord](
	ttlcache.WithTTL[string, *SweepRecord](params.CacheSweepTTL))

func SetLastSweep(tag string, rec *SweepRecord) {
	LastSweepTTLCache.Set(tag, rec, ttlcache.DefaultTTL)
}

func GetLastSweep(tag string) *SweepRecord {
	item := LastSweepTTLCache.Get(tag)
	if item == nil {
		return nil
	}
	return item.Value()
}

// SweepCache is a read-through sweep store: LRU in memory, bbolt behind it.
type SweepCache struct {
	db  *bbolt.DB
	mem *lru.Cache[uint64, *SweepRecord]
}

// OpenSweepCache opens (creating if necessary) the sweep database at root.
// Pass params.DatadirRoot for the conventional location.
func OpenSweepCache(root string) (*SweepCache, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(root, params.SweepDBName), 0600, nil)
	if err != nil {
		return nil, err
	}
	mem, err := lru.New[uint64, *SweepRecord](params.CacheSweepLRUSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SweepCache{db: db, mem: mem}, nil
}

func (c *SweepCache) Close() error {
	return c.db.Close()
}

func keyBytes(key uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, key)
	return b
}

// Get returns the sweep stored under key, or ok=false if absent.
func (c *SweepCache) Get(key uint64) (*SweepRecord, bool) {
	if rec, ok := c.mem.Get(key); ok {
		return rec, true
	}
	var rec *SweepRecord
	err := c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(params.SweepBucket)
		if bucket == nil {
			return nil
		}
		data := bucket.Get(keyBytes(key))
		if data == nil {
			return nil
		}
		rec = &SweepRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil || rec == nil {
		return nil, false
	}
	c.mem.Add(key, rec)
	return rec, true
}

// Put stores the sweep under key, in memory and on disk.
func (c *SweepCache) Put(key uint64, rec *SweepRecord) error {
	if rec == nil {
		return fmt.Errorf("put sweep: nil record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	err = c.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(params.SweepBucket)
		if err != nil {
			return err
		}
		return bucket.Put(keyBytes(key), data)
	})
	if err != nil {
		return err
	}
	c.mem.Add(key, rec)
	return nil
}
