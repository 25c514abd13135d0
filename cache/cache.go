package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// File cache for rendered public faction pages. Pages are mostly static
// between admin edits, so every admin write clears the owning faction's
// entry and the next visit re-renders it.

// GetCachePath returns the cache file path for a faction page.
func GetCachePath(factionID string) string {
	hash := generateHash(factionID)
	return filepath.Join("cache", "factions", fmt.Sprintf("%s_%s.html", factionID, hash[:16]))
}

// generateHash generates an xxHash hash for the given string
func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// EnsureCacheDir ensures the cache directory exists
func EnsureCacheDir() error {
	return os.MkdirAll(filepath.Join("cache", "factions"), 0755)
}

// WriteCache writes rendered HTML for a faction page.
func WriteCache(factionID, html string) error {
	if err := EnsureCacheDir(); err != nil {
		return err
	}
	return os.WriteFile(GetCachePath(factionID), []byte(html), 0644)
}

// ReadCache returns the cached page if present and not expired.
func ReadCache(factionID string, maxAge time.Duration) (string, bool) {
	cachePath := GetCachePath(factionID)

	info, err := os.Stat(cachePath)
	if err != nil {
		return "", false
	}

	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return "", false
	}

	return string(content), true
}

// ClearFaction removes the cached page for one faction.
func ClearFaction(factionID string) error {
	err := os.Remove(GetCachePath(factionID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearAll removes every cached faction page.
func ClearAll() error {
	return os.RemoveAll(filepath.Join("cache", "factions"))
}

// ClearOldCache removes cache files older than the specified duration.
func ClearOldCache(maxAge time.Duration) error {
	cacheRoot := filepath.Join("cache", "factions")

	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
		return nil
	})
}
