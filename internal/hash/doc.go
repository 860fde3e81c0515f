// Package hash provides the checksums and hash functions used by voxgo.
//
// # CRC32-Castagnoli (CRC32C)
//
// Blob-backed pagers append a CRC32C trailer to every stored chunk so that a
// truncated or bit-flipped object is reported as corrupt instead of being
// decompressed into garbage voxels. Go's crc32 package uses SSE4.2 / ARM CRC
// instructions when available.
//
//	checksum := hash.CRC32C(data)
//
// # Chunk positions
//
// Position mixes a chunk coordinate into a 32-bit value for the open-addressed
// chunk table. Neighbouring chunks land in unrelated slots, which keeps linear
// probe sequences short for the blocky access patterns of terrain.
package hash
