package fetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// cachedPage is the on-disk form of a fetched page.
type cachedPage struct {
	HTML      string    `msgpack:"html"`
	FinalURL  string    `msgpack:"finalUrl"`
	FetchedAt time.Time `msgpack:"fetchedAt"`
}

// Cache stores fetched pages on disk, one msgpack file per URL. Entries
// older than the TTL are treated as misses and overwritten on the next
// store.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache opens a cache rooted at dir. A non-positive ttl disables it:
// every lookup misses and Store does nothing.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return &Cache{}, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// DefaultCacheDir returns the per-user page cache location.
func DefaultCacheDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "outloud", "pages")
}

func (c *Cache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".msgpack")
}

// Lookup returns the cached page for a URL, or nil on a miss. Corrupt
// entries are removed and miss.
func (c *Cache) Lookup(url string) *FetchResult {
	if c.dir == "" {
		return nil
	}
	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return nil
	}

	var page cachedPage
	if err := msgpack.Unmarshal(data, &page); err != nil {
		os.Remove(c.path(url))
		return nil
	}
	if time.Since(page.FetchedAt) > c.ttl {
		return nil
	}

	return &FetchResult{HTML: page.HTML, FinalURL: page.FinalURL}
}

// Store writes a fetched page to the cache. Write failures are silent;
// the cache is advisory.
func (c *Cache) Store(url string, result *FetchResult) {
	if c.dir == "" || result == nil {
		return
	}
	data, err := msgpack.Marshal(cachedPage{
		HTML:      result.HTML,
		FinalURL:  result.FinalURL,
		FetchedAt: time.Now(),
	})
	if err != nil {
		return
	}
	os.WriteFile(c.path(url), data, 0644)
}
