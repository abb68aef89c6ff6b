// Package imagecache caches generated illustrations by a stable semantic
// key and drives the request state machine around the generative service,
// including the credential-reselection recovery path.
package imagecache

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sakina/gosakina/internal/kv"
)

// Prefix namespaces image entries in the key-value layer so they can be
// enumerated and evicted in bulk.
const Prefix = "img_cache_"

// Cache stores data-URI image payloads, one entry per cache key,
// last-writer-wins.
type Cache struct {
	kv  kv.Store
	log zerolog.Logger
}

// NewCache creates a cache over kvs.
func NewCache(kvs kv.Store, log zerolog.Logger) *Cache {
	return &Cache{kv: kvs, log: log}
}

// Get returns the cached payload for key. Read failures count as a miss:
// entries are cheaply regenerable from the same key and prompt.
func (c *Cache) Get(key string) (string, bool) {
	data, err := c.kv.Get(Prefix + key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		return "", false
	}
	if data == nil {
		return "", false
	}
	return string(data), true
}

// Set writes the payload under key. If the backing store rejects the write,
// every image entry is evicted and the write is retried exactly once. The
// crude clear-all policy is fine for a small cache of regenerable images.
func (c *Cache) Set(key, data string) error {
	err := c.kv.Set(Prefix+key, []byte(data))
	if err == nil {
		return nil
	}

	c.log.Warn().Err(err).Str("key", key).Msg("cache write failed, evicting all entries")
	if evictErr := c.Evict(); evictErr != nil {
		return fmt.Errorf("imagecache: evict after full store: %w", evictErr)
	}
	if err := c.kv.Set(Prefix+key, []byte(data)); err != nil {
		return fmt.Errorf("imagecache: write after eviction: %w", err)
	}
	return nil
}

// Evict removes every image entry.
func (c *Cache) Evict() error {
	keys, err := c.kv.Keys(Prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := c.kv.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
