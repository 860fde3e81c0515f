// Package pager defines how chunks leave and re-enter memory.
//
// A PagedVolume calls PageIn the first time it needs a chunk it has never
// seen, and PageOut when a modified chunk is evicted or flushed. Pagers only
// ever see compressed bytes through a Handle; the in-memory voxel layout is
// private to the volume.
//
// Backends:
//
//   - FilePager: one raw file per chunk in a directory
//   - BlobPager: any blobstore.BlobStore (memory, MinIO, S3, cached)
//   - SQLitePager: one row per chunk in a SQLite database
//   - dynamo.Pager: one item per chunk in a DynamoDB table
//
// A missing chunk is never an error: PageIn leaves the handle untouched and
// the chunk starts out filled with the zero voxel.
package pager
