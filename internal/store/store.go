package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/pokedex/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFavorites = []byte("favorites")
	bucketSpecies   = []byte("species")
)

var allBuckets = [][]byte{bucketFavorites, bucketSpecies}

// speciesEntry stores the index with the time it was fetched
type speciesEntry struct {
	Refs      []domain.SpeciesRef `json:"refs"`
	FetchedAt int64               `json:"fetchedAt"`
}

// DiskStore implements domain.Store using BoltDB.
type DiskStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewDiskStore opens the store under baseDir, namespaced by the API base URL
// so that switching mirrors never mixes data. An empty baseDir gives a
// memory-only store that persists nothing.
func NewDiskStore(baseDir, apiURL string) (*DiskStore, error) {
	if baseDir == "" {
		return &DiskStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if apiURL != "" {
		dir = filepath.Join(baseDir, hashAPIURL(apiURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "pokedex.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DiskStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashAPIURL(apiURL string) string {
	normalized := strings.TrimRight(strings.ToLower(apiURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Persistent reports whether the store is backed by a file
func (s *DiskStore) Persistent() bool {
	return s.db != nil
}

func (s *DiskStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *DiskStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *DiskStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *DiskStore) deletePrefix(bucket []byte, prefix string) {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		var keys [][]byte
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Favorites ===

func (s *DiskStore) GetFavorites() ([]string, bool) {
	var ids []string
	ok := s.get(bucketFavorites, "list", &ids)
	return ids, ok
}

func (s *DiskStore) SaveFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.set(bucketFavorites, "list", ids)
}

// === Species index (key: limit:{n}) ===

func (s *DiskStore) GetSpecies(limit int) ([]domain.SpeciesRef, bool) {
	var entry speciesEntry
	if !s.get(bucketSpecies, "limit:"+strconv.Itoa(limit), &entry) {
		return nil, false
	}
	return entry.Refs, true
}

func (s *DiskStore) SaveSpecies(limit int, refs []domain.SpeciesRef) error {
	return s.set(bucketSpecies, "limit:"+strconv.Itoa(limit), speciesEntry{
		Refs:      refs,
		FetchedAt: time.Now().Unix(),
	})
}

// === Invalidation ===

func (s *DiskStore) InvalidateSpecies() {
	s.deletePrefix(bucketSpecies, "limit:")
}

func (s *DiskStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			var keys [][]byte
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				keys = append(keys, append([]byte(nil), k...))
			}
			for _, k := range keys {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
