// Package resource implements a Controller for limits shared between volumes.
//
// A single PagedVolume is driven by one owner, but an application usually runs
// many of them (one per world shard, one per level of detail, ...). The
// Controller lets those volumes share two budgets:
//
//   - Memory: bytes of uncompressed chunk data across all volumes (non-blocking, fail-fast)
//   - IO: a token bucket for bytes moved through pagers
//
// # Memory Management
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded at once.
// A volume reacts by evicting its own least recently used chunk and retrying:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	})
//	a, _ := voxgo.New[uint8](voxgo.WithResourceController(rc))
//	b, _ := voxgo.New[uint8](voxgo.WithResourceController(rc))
//
// # IO Rate Limiting
//
// AcquireIO blocks until the bucket allows the requested bytes. Requests larger
// than the burst are split, so a large chunk is throttled rather than rejected.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
