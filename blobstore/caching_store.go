package blobstore

import (
	"context"

	"github.com/hupe1980/voxgo/internal/cache"
	"github.com/hupe1980/voxgo/resource"
)

// CachingStore wraps a BlobStore with a read-through, write-through LRU cache.
type CachingStore struct {
	inner BlobStore
	cache cache.BlockCache
}

// NewCachingStore caches up to capacityBytes of blobs from inner.
// If rc is not nil, cached bytes are charged to it.
func NewCachingStore(inner BlobStore, capacityBytes int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRUBlockCache(capacityBytes, rc),
	}
}

func key(name string) cache.CacheKey {
	return cache.CacheKey{Kind: cache.CacheKindBlob, Path: name}
}

// Get serves from the cache, falling back to the inner store.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if b, ok := s.cache.Get(ctx, key(name)); ok {
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	}

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Set(ctx, key(name), cached)
	return data, nil
}

// Put writes through to the inner store and refreshes the cache.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Invalidate(func(k cache.CacheKey) bool {
		return k.Kind == cache.CacheKindBlob && k.Path == name
	})
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Set(ctx, key(name), cached)
	return nil
}

// Delete invalidates the cache entry and deletes from the inner store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Invalidate(func(k cache.CacheKey) bool {
		return k.Kind == cache.CacheKindBlob && k.Path == name
	})
	return s.inner.Delete(ctx, name)
}

// List is passed through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hits and misses.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// Close releases the cache.
func (s *CachingStore) Close() error {
	return s.cache.Close()
}
