package audio

import (
	"context"
	"fmt"

	"github.com/sakina-app/core/internal/quran"
)

// CachedResolver resolves through the local cache, falling back to the
// remote catalog on a miss. A successful fetch is recorded in the cache
// before the handle is returned; a cancelled fetch leaves no trace.
type CachedResolver struct {
	catalog *Catalog
	cache   *Cache
}

// NewCachedResolver composes a catalog client with a local cache.
func NewCachedResolver(catalog *Catalog, cache *Cache) *CachedResolver {
	return &CachedResolver{catalog: catalog, cache: cache}
}

// Resolve implements Resolver.
func (r *CachedResolver) Resolve(ctx context.Context, verse quran.VerseID, reciter quran.Reciter) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}
	if reciter.IsZero() {
		return Handle{}, fmt.Errorf("no reciter selected")
	}
	if !verse.Valid() {
		return Handle{}, fmt.Errorf("invalid verse %s", verse)
	}

	if h, ok, err := r.cache.Get(reciter, verse); err != nil {
		return Handle{}, fmt.Errorf("cache lookup: %w", err)
	} else if ok {
		return h, nil
	}

	entry, err := r.catalog.Lookup(ctx, reciter, verse)
	if err != nil {
		return Handle{}, fmt.Errorf("catalog lookup %s: %w", verse, err)
	}

	dst := r.cache.EntryPath(reciter, verse)
	if err := r.catalog.Fetch(ctx, entry.AudioURL, dst); err != nil {
		return Handle{}, fmt.Errorf("fetch %s: %w", verse, err)
	}

	if err := r.cache.Put(reciter, verse, dst, entry.Duration()); err != nil {
		return Handle{}, fmt.Errorf("cache store: %w", err)
	}

	return Handle{
		Verse:    verse,
		Reciter:  reciter,
		Path:     dst,
		URL:      entry.AudioURL,
		Duration: entry.Duration(),
	}, nil
}

// Verify CachedResolver implements Resolver at compile time.
var _ Resolver = (*CachedResolver)(nil)
