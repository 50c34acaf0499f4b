package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but is older
// than the cache TTL. The caller should refetch and [Cache.Set] the result.
var ErrExpired = errors.New("cache entry expired")

// filePrefix marks response files so they can share a directory with other
// caches.
const filePrefix = "remote-"

// Cache is a file-based store for fetched response bodies.
//
// Each entry is a JSON file named by the SHA-256 of its key. A TTL of 0 means
// entries never expire. A Cache is not safe for concurrent use, but several
// instances may share one directory.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// Response is a fetched body, as stored in the cache.
type Response struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// NewCache creates a Cache in dir, creating the directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry lifetime. 0 means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the entry stored under key.
//
//   - (resp, true, nil): fresh hit
//   - (zero, false, nil): miss
//   - (zero, false, ErrExpired): stale entry
func (c *Cache) Get(key string) (Response, bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Response{}, false, nil
	}
	if err != nil {
		return Response{}, false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return Response{}, false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Response{}, false, err
	}
	var e Response
	if err := json.Unmarshal(data, &e); err != nil {
		return Response{}, false, err
	}
	return e, true, nil
}

// Set stores e under key, refreshing its TTL.
func (c *Cache) Set(key string, e Response) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache whose keys carry prefix.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{dir: c.dir, ttl: c.ttl, prefix: c.prefix + prefix}
}

// Clear removes every stored response in the cache directory, including
// those of other namespaces, and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, filePrefix+"*.json"))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, filePrefix+hex.EncodeToString(h[:])+".json")
}
