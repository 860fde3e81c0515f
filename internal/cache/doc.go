// Package cache provides an LRU cache for immutable byte blobs.
//
// blobstore.CachingStore puts it in front of slow stores (S3, MinIO) so that
// chunks which are evicted and faulted back in repeatedly are served from RAM.
// The cache is bounded in bytes and can additionally charge a shared
// resource.Controller.
package cache
