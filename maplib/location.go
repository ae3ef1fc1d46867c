package maplib

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

type LocationResolver struct {
	geolocator Geolocator
	cache      *LocationCache
	ttl        time.Duration
	now        func() time.Time
	group      singleflight.Group
}

// Resolve returns a location of the given identifier. An empty
// identifier is treated as DefaultIdentifier.
//
// Fresh cached entries are returned as is and tagged with Cached. Stale
// or missing entries are fetched from Geolocator. Concurrent misses for
// the same identifier share a single upstream call. This call is not
// bound to cancellation of any caller: each caller stops waiting when
// its own context is done.
func (l *LocationResolver) Resolve(ctx context.Context, identifier string) (Location, error) {
	key := identifier
	if key == "" {
		key = DefaultIdentifier
	}

	if entry, ok := l.lookup(key); ok {
		return entry.Location(true), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	resultChan := l.group.DoChan(key, func() (interface{}, error) {
		return l.lookupOrFetch(fetchCtx, key)
	})

	select {
	case <-ctx.Done():
		return Location{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, ctx.Err())
	case result := <-resultChan:
		if result.Err != nil {
			return Location{}, result.Err
		}

		resolved := result.Val.(resolvedEntry)

		return resolved.entry.Location(resolved.cached), nil
	}
}

type resolvedEntry struct {
	entry  LocationCacheEntry
	cached bool
}

// lookupOrFetch returns a fresh cached entry if there is one and
// fetches it from Geolocator otherwise.
func (l *LocationResolver) lookupOrFetch(ctx context.Context, key string) (resolvedEntry, error) {
	if entry, ok := l.lookup(key); ok {
		return resolvedEntry{entry: entry, cached: true}, nil
	}

	entry, err := l.fetch(ctx, key)
	if err != nil {
		return resolvedEntry{}, err
	}

	return resolvedEntry{entry: entry}, nil
}

func (l *LocationResolver) lookup(key string) (LocationCacheEntry, bool) {
	entry, ok := l.cache.Get(key)
	if !ok || l.now().Sub(entry.Timestamp) >= l.ttl {
		return LocationCacheEntry{}, false
	}

	return entry, true
}

func (l *LocationResolver) fetch(ctx context.Context, key string) (LocationCacheEntry, error) {
	result, err := l.geolocator.Locate(ctx, identifierIP(key))
	if err != nil {
		return LocationCacheEntry{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	if result.Lat == nil || result.Lng == nil || (*result.Lat == 0 && *result.Lng == 0) {
		return LocationCacheEntry{}, fmt.Errorf("%w: %s has reported no coordinates",
			ErrLocationUnavailable, l.geolocator.Name())
	}

	entry := LocationCacheEntry{
		Key:         key,
		Lat:         *result.Lat,
		Lng:         *result.Lng,
		City:        orUnknown(result.City),
		Region:      orUnknown(result.Region),
		Country:     orUnknown(result.Country),
		CountryCode: result.CountryCode,
		Timestamp:   l.now(),
	}

	l.cache.Set(entry)

	return entry, nil
}

// NewLocationResolver creates a new resolver. ttl <= 0 means
// DefaultLocationCacheTTL. now can be nil, time.Now is used then.
func NewLocationResolver(geolocator Geolocator,
	cache *LocationCache,
	ttl time.Duration,
	now func() time.Time) *LocationResolver {
	if ttl <= 0 {
		ttl = DefaultLocationCacheTTL
	}

	if now == nil {
		now = time.Now
	}

	return &LocationResolver{
		geolocator: geolocator,
		cache:      cache,
		ttl:        ttl,
		now:        now,
	}
}
