package voxgo

import (
	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/pager"
)

// Chunk is a cubic block of voxels, the unit of storage, compression and
// paging.
//
// A chunk is resident while it holds uncompressed voxel data. Once evicted it
// keeps only its compressed payload. Coordinates passed to Voxel and SetVoxel
// are chunk-local, in [0, SideLength()).
type Chunk[V comparable] struct {
	layout   *chunkLayout
	position model.Vec3

	data       []V
	compressed []byte
	dirty      bool
	morton     bool

	lastAccess uint64
	slot       int
}

var _ pager.Handle = (*Chunk[uint8])(nil)

// NewChunk creates a resident chunk filled with the zero voxel. position is
// in chunk space, not voxel space.
func NewChunk[V comparable](position model.Vec3, sideLength int32) (*Chunk[V], error) {
	if _, err := voxelSize[V](); err != nil {
		return nil, err
	}
	layout, err := newChunkLayout(sideLength)
	if err != nil {
		return nil, err
	}
	c := newChunk[V](layout, position, false)
	c.data = make([]V, layout.voxels)
	return c, nil
}

func newChunk[V comparable](layout *chunkLayout, position model.Vec3, morton bool) *Chunk[V] {
	return &Chunk[V]{
		layout:   layout,
		position: position,
		morton:   morton,
		slot:     -1,
	}
}

// Position returns the chunk-space position.
func (c *Chunk[V]) Position() model.Vec3 { return c.position }

// SideLength returns the number of voxels along each edge.
func (c *Chunk[V]) SideLength() int32 { return c.layout.side }

// Region returns the voxel-space region covered by the chunk.
func (c *Chunk[V]) Region() model.Region {
	lower := model.Vec3{
		X: c.position.X << c.layout.power,
		Y: c.position.Y << c.layout.power,
		Z: c.position.Z << c.layout.power,
	}
	return model.NewRegion(lower, lower.Add(model.Splat(c.layout.mask)))
}

func (c *Chunk[V]) index(x, y, z int32) int {
	if c.morton {
		return c.layout.morton(x, y, z)
	}
	return c.layout.linear(x, y, z)
}

// Voxel returns the voxel at a chunk-local position. A chunk without
// uncompressed data reads as the zero voxel.
func (c *Chunk[V]) Voxel(x, y, z int32) V {
	if c.data == nil {
		var zero V
		return zero
	}
	return c.data[c.index(x, y, z)]
}

// SetVoxel writes the voxel at a chunk-local position and marks the chunk
// dirty. It is a no-op on a chunk without uncompressed data.
func (c *Chunk[V]) SetVoxel(x, y, z int32, value V) {
	if c.data == nil {
		return
	}
	c.data[c.index(x, y, z)] = value
	c.dirty = true
}

// HasUncompressedData reports whether the chunk is resident.
func (c *Chunk[V]) HasUncompressedData() bool { return c.data != nil }

// IsDirty reports whether the chunk was modified since it was last
// compressed.
func (c *Chunk[V]) IsDirty() bool { return c.dirty }

// CompressedData returns the compressed payload. It implements pager.Handle.
func (c *Chunk[V]) CompressedData() []byte { return c.compressed }

// SetCompressedData replaces the compressed payload. It implements
// pager.Handle.
func (c *Chunk[V]) SetCompressedData(data []byte) { c.compressed = data }

// IsMortonOrdered reports whether voxels are stored in Morton order.
func (c *Chunk[V]) IsMortonOrdered() bool { return c.morton }

// ChangeLinearOrderingToMorton re-lays the voxel data in Morton (Z-curve)
// order. Voxel access is unaffected.
func (c *Chunk[V]) ChangeLinearOrderingToMorton() {
	if c.morton {
		return
	}
	c.reorder(func(dst, src []V, x, y, z int32) {
		dst[c.layout.morton(x, y, z)] = src[c.layout.linear(x, y, z)]
	})
	c.morton = true
}

// ChangeMortonOrderingToLinear restores the default x-fastest layout.
func (c *Chunk[V]) ChangeMortonOrderingToLinear() {
	if !c.morton {
		return
	}
	c.reorder(func(dst, src []V, x, y, z int32) {
		dst[c.layout.linear(x, y, z)] = src[c.layout.morton(x, y, z)]
	})
	c.morton = false
}

func (c *Chunk[V]) reorder(move func(dst, src []V, x, y, z int32)) {
	if c.data == nil {
		return
	}
	out := make([]V, len(c.data))
	side := c.layout.side
	for z := int32(0); z < side; z++ {
		for y := int32(0); y < side; y++ {
			for x := int32(0); x < side; x++ {
				move(out, c.data, x, y, z)
			}
		}
	}
	c.data = out
	// The compressed copy is in the old layout.
	c.dirty = true
}

// compress replaces the compressed payload with the current voxel data.
// scratch must hold MaxCompressedSize bytes. On failure the previous payload
// is kept.
func (c *Chunk[V]) compress(comp codec.Compressor, scratch []byte) error {
	n, err := comp.Compress(scratch, asBytes(c.data))
	if err != nil {
		return &CompressionError{Op: "compress", Chunk: c.position, cause: err}
	}
	c.compressed = append([]byte(nil), scratch[:n]...)
	return nil
}

// decompress rebuilds the voxel data from the compressed payload. An empty
// payload yields a chunk full of zero voxels.
func (c *Chunk[V]) decompress(comp codec.Compressor) error {
	data := make([]V, c.layout.voxels)
	if len(c.compressed) > 0 {
		dst := asBytes(data)
		n, err := comp.Decompress(dst, c.compressed)
		if err != nil {
			return &CompressionError{Op: "decompress", Chunk: c.position, cause: err}
		}
		if n != len(dst) {
			return &CompressionError{Op: "decompress", Chunk: c.position, cause: codec.ErrCorrupt}
		}
	}
	c.data = data
	return nil
}

// release drops the voxel data, keeping the compressed payload.
func (c *Chunk[V]) release() {
	c.data = nil
}
