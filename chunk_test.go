package voxgo

import (
	"testing"

	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunk(t *testing.T) {
	c, err := NewChunk[uint8](model.Vec3{X: -1, Y: 2, Z: 0}, 8)
	require.NoError(t, err)

	assert.Equal(t, int32(8), c.SideLength())
	assert.True(t, c.HasUncompressedData())
	assert.False(t, c.IsDirty())
	assert.Equal(t, model.NewRegionFromCoords(-8, 16, 0, -1, 23, 7), c.Region())

	_, err = NewChunk[uint8](model.Vec3{}, 6)
	assert.ErrorIs(t, err, ErrInvalidSideLength)

	_, err = NewChunk[*int](model.Vec3{}, 8)
	assert.ErrorIs(t, err, ErrInvalidVoxelType)
}

func TestChunkVoxelAccess(t *testing.T) {
	c, err := NewChunk[uint16](model.Vec3{}, 4)
	require.NoError(t, err)

	c.SetVoxel(1, 2, 3, 42)
	assert.True(t, c.IsDirty())
	assert.Equal(t, uint16(42), c.Voxel(1, 2, 3))
	assert.Equal(t, uint16(0), c.Voxel(3, 2, 1))

	// Shift indexing: x + y<<2 + z<<4.
	assert.Equal(t, uint16(42), c.data[1+2*4+3*16])
}

func TestChunkMortonOrdering(t *testing.T) {
	c, err := NewChunk[uint16](model.Vec3{}, 8)
	require.NoError(t, err)

	value := func(x, y, z int32) uint16 { return uint16(x + y*8 + z*64) }
	for z := int32(0); z < 8; z++ {
		for y := int32(0); y < 8; y++ {
			for x := int32(0); x < 8; x++ {
				c.SetVoxel(x, y, z, value(x, y, z))
			}
		}
	}
	linear := append([]uint16(nil), c.data...)

	c.ChangeLinearOrderingToMorton()
	assert.True(t, c.IsMortonOrdered())
	// Morton index 1 is (1,0,0), 2 is (0,1,0), 4 is (0,0,1).
	assert.Equal(t, value(1, 0, 0), c.data[1])
	assert.Equal(t, value(0, 1, 0), c.data[2])
	assert.Equal(t, value(0, 0, 1), c.data[4])
	assert.Equal(t, value(1, 1, 1), c.data[7])

	for z := int32(0); z < 8; z++ {
		for y := int32(0); y < 8; y++ {
			for x := int32(0); x < 8; x++ {
				require.Equal(t, value(x, y, z), c.Voxel(x, y, z))
			}
		}
	}

	c.ChangeLinearOrderingToMorton()
	c.ChangeMortonOrderingToLinear()
	assert.False(t, c.IsMortonOrdered())
	assert.Equal(t, linear, c.data)
}

func TestChunkCompressRoundTrip(t *testing.T) {
	c, err := NewChunk[uint32](model.Vec3{}, 8)
	require.NoError(t, err)
	c.SetVoxel(7, 7, 7, 0xDEADBEEF)
	c.SetVoxel(0, 1, 2, 3)

	comp := codec.NewZstd(codec.ZstdDefault)
	scratch := make([]byte, comp.MaxCompressedSize(len(asBytes(c.data))))
	require.NoError(t, c.compress(comp, scratch))
	require.NotEmpty(t, c.CompressedData())

	c.release()
	assert.False(t, c.HasUncompressedData())
	assert.Equal(t, uint32(0), c.Voxel(7, 7, 7))

	require.NoError(t, c.decompress(comp))
	assert.Equal(t, uint32(0xDEADBEEF), c.Voxel(7, 7, 7))
	assert.Equal(t, uint32(3), c.Voxel(0, 1, 2))
}

func TestChunkDecompressWrongSize(t *testing.T) {
	small, err := NewChunk[uint8](model.Vec3{}, 4)
	require.NoError(t, err)
	small.SetVoxel(1, 1, 1, 1)
	comp := codec.NewLZ4()
	require.NoError(t, small.compress(comp, make([]byte, comp.MaxCompressedSize(64))))

	big, err := NewChunk[uint8](model.Vec3{X: 5}, 8)
	require.NoError(t, err)
	big.release()
	big.SetCompressedData(small.CompressedData())

	err = big.decompress(comp)
	var ce *CompressionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "decompress", ce.Op)
	assert.Equal(t, model.Vec3{X: 5}, ce.Chunk)
	assert.ErrorIs(t, err, codec.ErrCorrupt)
	assert.False(t, big.HasUncompressedData())
}

func TestVoxelSize(t *testing.T) {
	type material struct {
		Density  uint8
		Material uint16
	}
	type withSlice struct {
		Data []byte
	}

	n, err := voxelSize[material]()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = voxelSize[[3]float32]()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, fn := range []func() (int, error){
		voxelSize[string],
		voxelSize[withSlice],
		voxelSize[struct{}],
		voxelSize[map[int]int],
	} {
		_, err := fn()
		assert.ErrorIs(t, err, ErrInvalidVoxelType)
	}
}

func TestExpand3(t *testing.T) {
	assert.Equal(t, uint32(0), expand3(0))
	assert.Equal(t, uint32(1), expand3(1))
	assert.Equal(t, uint32(0b1000), expand3(2))
	assert.Equal(t, uint32(0b1001), expand3(3))
	assert.Equal(t, uint32(0x49249249)&0x3FFFFFFF, expand3(1023))
}
