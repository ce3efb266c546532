// Package cache stores generated stylesheets keyed by a content hash of
// their inputs, so `cascada gen` can skip regeneration when nothing changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache is a small on-disk cache of generated outputs. One entry per project
// is the expected shape; there is no eviction.
type Cache struct {
	mu    sync.Mutex
	dir   string
	index *index
}

type index struct {
	Version string            `json:"version"`
	Entries map[string]*entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

type entry struct {
	Key     string    `json:"key"`
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
}

// New opens (or creates) a cache rooted at dir.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir: dir,
		index: &index{
			Version: "1.0",
			Entries: make(map[string]*entry),
		},
	}
	if err := c.loadIndex(); err != nil {
		// Missing or corrupted index: start fresh.
		c.index = &index{Version: "1.0", Entries: make(map[string]*entry)}
	}
	return c, nil
}

// Key derives the cache key for a set of input byte slices.
func Key(inputs ...[]byte) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write(input)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached output for key, if present and readable.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	e, ok := c.index.Entries[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		c.Delete(key)
		return nil, false
	}
	return data, true
}

// Put stores data under key.
func (c *Cache) Put(key string, data []byte) error {
	path := filepath.Join(c.dir, "out_"+key[:16]+".css")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.Entries[key] = &entry{Key: key, Path: path, Created: time.Now()}
	c.index.Updated = time.Now()
	return c.saveIndexLocked()
}

// Delete removes the entry for key, if any.
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index.Entries[key]
	if !ok {
		return nil
	}
	if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	delete(c.index.Entries, key)
	c.index.Updated = time.Now()
	return c.saveIndexLocked()
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.index.Entries {
		if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	c.index = &index{Version: "1.0", Entries: make(map[string]*entry)}
	return c.saveIndexLocked()
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return err
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return err
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]*entry)
	}
	c.index = &idx
	return nil
}

func (c *Cache) saveIndexLocked() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, "index.json"), data, 0644)
}
