// Package voxgo provides a paged voxel volume: a sparse 3D array of voxels
// stored in cubic chunks, with a bounded in-memory working set, pluggable
// chunk compression and a pluggable backing store.
//
// # Quick Start
//
//	vol, err := voxgo.NewPagedVolume[uint8](
//	    voxgo.WithChunkSideLength(32),
//	    voxgo.WithMaxResidentChunks(1024),
//	    voxgo.WithPager(pager.NewFilePager("./chunks")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer vol.Close()
//
//	_ = vol.SetVoxel(10, 20, 30, 1)
//	v, _ := vol.Voxel(10, 20, 30)
//
// # Voxel Types
//
// Any comparable plain-data type works as a voxel: integers, floats, and
// arrays or structs of them. Types holding pointers (strings, slices, maps)
// are rejected with ErrInvalidVoxelType because chunk payloads are
// compressed directly from memory. Payloads use host byte order.
//
// # Paging
//
// Chunks are created on first touch. A chunk the volume has never seen is
// offered to the pager's PageIn; if the pager has nothing stored, the chunk
// starts out filled with the zero voxel. When more than MaxResidentChunks
// chunks are resident, the least recently used one is evicted. Modified
// chunks are compressed and written through PageOut. Evicted chunks keep
// their compressed payload in the chunk table, so faulting them back in
// needs no pager round trip.
//
// If compression or PageOut fails, the eviction is aborted: the chunk stays
// resident with its previous compressed payload and the error is returned to
// the call that triggered the eviction.
//
// # Sampling
//
// A Sampler walks the volume with cheap incremental moves and neighbour
// peeks, which is what surface extraction and filters need:
//
//	s := vol.Sampler()
//	s.SetPosition(0, 0, 0)
//	for x := 0; x < 64; x++ {
//	    if s.Voxel() != s.PeekVoxel1px0py0pz() {
//	        // boundary along +X
//	    }
//	    s.MovePositiveX()
//	}
//	if err := s.Err(); err != nil {
//	    return err
//	}
//
// # Concurrency
//
// A volume is single-writer and single-reader: reads update the LRU state.
// Shard by region and use one volume per goroutine for parallel work. Such
// volumes can share one resource.Controller to bound their combined memory.
package voxgo
