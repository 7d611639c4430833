// Package memory caches extraction results keyed by document content,
// so repeated consistency checks over the same story skip re-extraction.
package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/memoweave/memoweave/internal/model"
)

const keyPrefix = "memoweave:v1:"

// Store holds event memories for recently analyzed documents.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a store whose entries expire after ttl.
// A non-positive ttl keeps entries until eviction.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Store{cache: gocache.New(ttl, 10*time.Minute)}
}

// Key derives the cache key for a document's raw content. The same
// text always maps to the same key, regardless of filename.
func Key(content string) string {
	sum := sha256.Sum256([]byte(content))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached event memory for a key, if present.
func (s *Store) Get(key string) (*model.EventMemory, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	mem, ok := v.(*model.EventMemory)
	return mem, ok
}

// Put stores an event memory under key with the default TTL.
func (s *Store) Put(key string, mem *model.EventMemory) {
	s.cache.SetDefault(key, mem)
}

// Flush drops all cached entries.
func (s *Store) Flush() {
	s.cache.Flush()
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
