package maplib

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultLocationCacheSize = 1024
	DefaultLocationCacheTTL  = 600 * time.Second

	// DefaultIdentifier is a cache key for callers we know nothing about.
	DefaultIdentifier = "default"
)

type LocationCacheEntry struct {
	Key         string
	Lat         float64
	Lng         float64
	City        string
	Region      string
	Country     string
	CountryCode string
	Timestamp   time.Time
}

func (l LocationCacheEntry) Location(cached bool) Location {
	return Location{
		City:        l.City,
		Region:      l.Region,
		Country:     l.Country,
		CountryCode: l.CountryCode,
		Lat:         l.Lat,
		Lng:         l.Lng,
		Cached:      cached,
	}
}

// LocationCache keeps at most one entry per key. If cache is full, least
// recently used entry is evicted. Freshness is not checked here: this is
// a responsibility of the reader.
//
// LocationCache is safe for concurrent use.
type LocationCache struct {
	entries *lru.Cache[string, LocationCacheEntry]
}

func (l *LocationCache) Get(key string) (LocationCacheEntry, bool) {
	return l.entries.Get(key)
}

func (l *LocationCache) Set(entry LocationCacheEntry) {
	l.entries.Add(entry.Key, entry)
}

func (l *LocationCache) Len() int {
	return l.entries.Len()
}

func NewLocationCache(size int) *LocationCache {
	if size <= 0 {
		size = DefaultLocationCacheSize
	}

	entries, err := lru.New[string, LocationCacheEntry](size)
	if err != nil {
		panic(err)
	}

	return &LocationCache{
		entries: entries,
	}
}
