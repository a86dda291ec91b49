// Package cache stores raw remote timings and detected locations so repeated
// lookups skip the network.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

const (
	prayerCacheFile = "timings_%s.json" // keyed by hash
	geoCacheFile    = "geolocation.json"
	geoTTL          = 24 * time.Hour
	dateLayout      = "2006-01-02"
)

// Key identifies one day of remote timings. Every field that changes what
// the API returns is part of the key.
type Key struct {
	Date    time.Time
	Lat     float64
	Lon     float64
	City    string
	Country string
	Method  int
	School  int
}

// Hash builds a deterministic digest of the key.
func (k Key) Hash() string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%d|%d",
		k.Date.Format(dateLayout), k.Lat, k.Lon, k.City, k.Country, k.Method, k.School)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// Entry is a cached day of unadjusted API timings.
type Entry struct {
	Date     string      `json:"date"` // YYYY-MM-DD
	Method   int         `json:"method"`
	School   int         `json:"school"`
	Timings  api.Timings `json:"timings"`
	Hijri    string      `json:"hijri,omitempty"`
	Timezone string      `json:"timezone,omitempty"`
}

// NewEntry captures the parts of an API response worth keeping.
func NewEntry(k Key, resp *api.Response) Entry {
	return Entry{
		Date:     k.Date.Format(dateLayout),
		Method:   k.Method,
		School:   k.School,
		Timings:  resp.Data.Timings,
		Hijri:    resp.Data.Date.Hijri.Display(),
		Timezone: resp.Data.Meta.Timezone,
	}
}

// Store is a timings cache. Misses and read errors both report false.
type Store interface {
	LoadTimings(ctx context.Context, k Key) (*Entry, bool)
	SaveTimings(ctx context.Context, k Key, e Entry) error
}

// FileStore provides file-based caching for timings and geolocation data.
type FileStore struct {
	dir string
}

// geoEntry stores a cached geolocation result with a timestamp.
type geoEntry struct {
	Location prayer.Location `json:"location"`
	CachedAt time.Time       `json:"cached_at"`
}

// New creates a FileStore rooted at the given directory.
// If dir is empty, it defaults to the user cache dir under salah-times/.
func New(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		dir = filepath.Join(base, "salah-times")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (c *FileStore) Dir() string {
	return c.dir
}

// LoadTimings reads cached timings for k. An entry for another day is a miss.
func (c *FileStore) LoadTimings(_ context.Context, k Key) (*Entry, bool) {
	data, err := os.ReadFile(c.timingsPath(k))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Date != k.Date.Format(dateLayout) {
		return nil, false
	}

	return &entry, true
}

// SaveTimings writes timings for k.
func (c *FileStore) SaveTimings(_ context.Context, k Key, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(c.timingsPath(k), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

func (c *FileStore) timingsPath(k Key) string {
	return filepath.Join(c.dir, fmt.Sprintf(prayerCacheFile, k.Hash()))
}

// LoadGeo reads a cached geolocation result.
// Returns false if the cache is missing or older than 24 hours.
func (c *FileStore) LoadGeo() (prayer.Location, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, geoCacheFile))
	if err != nil {
		return prayer.Location{}, false
	}

	var entry geoEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return prayer.Location{}, false
	}

	if time.Since(entry.CachedAt) > geoTTL {
		return prayer.Location{}, false
	}

	return entry.Location, true
}

// SaveGeo writes a geolocation result to the cache.
func (c *FileStore) SaveGeo(loc prayer.Location) error {
	data, err := json.Marshal(geoEntry{Location: loc, CachedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(c.dir, geoCacheFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}
