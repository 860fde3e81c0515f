// Package blobstore provides the storage abstraction behind pager.BlobPager.
//
// A chunk that leaves memory is persisted as one blob whose name is derived
// from the chunk's region. BlobStore only needs whole-object semantics:
//
//	type BlobStore interface {
//	    Get(ctx, name) ([]byte, error)   // ErrNotFound if missing
//	    Put(ctx, name, data) error       // atomic replace
//	    Delete(ctx, name) error          // missing is not an error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// # Built-in Implementations
//
//   - LocalStore: local directory, atomic rename on Put, mmap on Get
//   - MemoryStore: in-process map, for tests and scratch volumes
//   - CachingStore: read-through LRU in front of any other store
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 via aws-sdk-go-v2
//
// Implementations must be safe for concurrent use.
package blobstore
