// Package fetch retrieves poem pages with on-disk caching and bounded retry.
package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Cache is a directory of raw page snapshots keyed by URL slug. The
// directory is created on first write.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	return &Cache{dir: dir}, nil
}

// Key derives a deterministic filesystem-safe cache filename from a URL.
func (c *Cache) Key(rawURL string) string {
	slug := slugChars.ReplaceAllString(strings.ToLower(rawURL), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "page"
	}
	return slug + ".html"
}

// Get returns the cached content for key, or an error if no usable entry
// exists.
func (c *Cache) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	return data, nil
}

// Put stores content under key, creating the cache directory if needed.
func (c *Cache) Put(key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return fmt.Errorf("create cache dir %s: %w", c.dir, err)
	}
	path := filepath.Join(c.dir, key)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cache entry %s: %w", path, err)
	}
	return nil
}
