package voxgo

import (
	"math"
	"testing"

	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplerBorder = uint16(0xFFFF)

var samplerRegion = model.NewRegionFromCoords(-8, -8, -8, 7, 7, 7)

func samplerValue(x, y, z int32) uint16 {
	if !samplerRegion.ContainsPoint(model.Vec3{X: x, Y: y, Z: z}, 0) {
		return samplerBorder
	}
	return uint16((x + 8) + (y+8)*16 + (z+8)*256)
}

func newSamplerVolume(t *testing.T, maxResident int) *PagedVolume[uint16] {
	t.Helper()

	v, err := NewPagedVolume[uint16](
		WithChunkSideLength(4),
		WithMaxResidentChunks(maxResident),
		WithRegion(samplerRegion),
		WithBorderValue(samplerBorder),
	)
	require.NoError(t, err)

	for z := int32(-8); z <= 7; z++ {
		for y := int32(-8); y <= 7; y++ {
			for x := int32(-8); x <= 7; x++ {
				require.NoError(t, v.SetVoxel(x, y, z, samplerValue(x, y, z)))
			}
		}
	}
	return v
}

func TestSamplerPeekNeighbourhood(t *testing.T) {
	for _, maxResident := range []int{64, 1} {
		v := newSamplerVolume(t, maxResident)
		s := v.Sampler()
		rng := testutil.NewRNG(3)

		// Include positions just outside the region so borders are covered.
		span := samplerRegion
		span.Grow(1)

		for i := 0; i < 200; i++ {
			p := rng.Point(span)
			s.SetPosition(p.X, p.Y, p.Z)
			require.Equal(t, samplerValue(p.X, p.Y, p.Z), s.Voxel())

			for dz := int32(-1); dz <= 1; dz++ {
				for dy := int32(-1); dy <= 1; dy++ {
					for dx := int32(-1); dx <= 1; dx++ {
						require.Equal(t, samplerValue(p.X+dx, p.Y+dy, p.Z+dz), s.Peek(dx, dy, dz),
							"max=%d pos=%s off=(%d,%d,%d)", maxResident, p, dx, dy, dz)
					}
				}
			}
		}
		require.NoError(t, s.Err())
	}
}

func TestSamplerNamedPeeks(t *testing.T) {
	v := newSamplerVolume(t, 64)
	s := v.Sampler()

	// Corner of a chunk: most neighbours live in other chunks.
	s.SetPosition(3, 3, 3)
	assert.Equal(t, samplerValue(2, 2, 2), s.PeekVoxel1nx1ny1nz())
	assert.Equal(t, samplerValue(3, 2, 2), s.PeekVoxel0px1ny1nz())
	assert.Equal(t, samplerValue(4, 3, 3), s.PeekVoxel1px0py0pz())
	assert.Equal(t, samplerValue(3, 4, 3), s.PeekVoxel0px1py0pz())
	assert.Equal(t, samplerValue(3, 3, 4), s.PeekVoxel0px0py1pz())
	assert.Equal(t, samplerValue(4, 4, 4), s.PeekVoxel1px1py1pz())
	assert.Equal(t, samplerValue(2, 4, 3), s.PeekVoxel1nx1py0pz())
	assert.Equal(t, samplerValue(3, 3, 3), s.PeekVoxel0px0py0pz())

	s.SetPosition(7, 7, 7)
	assert.Equal(t, samplerBorder, s.PeekVoxel1px1py1pz())
	assert.Equal(t, samplerBorder, s.PeekVoxel1px0py0pz())
	assert.Equal(t, samplerValue(6, 6, 6), s.PeekVoxel1nx1ny1nz())
}

func TestSamplerMoves(t *testing.T) {
	v := newSamplerVolume(t, 2)
	s := v.Sampler()
	assert.Equal(t, model.Vec3{X: -8, Y: -8, Z: -8}, s.Position())

	s.SetPosition(-9, 0, 0)
	assert.Equal(t, samplerBorder, s.Voxel())

	// Walk +X across every chunk boundary and off the far edge.
	for x := int32(-8); x <= 8; x++ {
		s.MovePositiveX()
		require.Equal(t, model.Vec3{X: x, Y: 0, Z: 0}, s.Position())
		require.Equal(t, samplerValue(x, 0, 0), s.Voxel(), "x=%d", x)
		require.Equal(t, samplerValue(x, 1, 0), s.Peek(0, 1, 0))
	}

	for x := int32(7); x >= -9; x-- {
		s.MoveNegativeX()
		require.Equal(t, samplerValue(x, 0, 0), s.Voxel(), "x=%d", x)
	}

	s.SetPosition(2, 2, 2)
	s.MovePositiveY()
	s.MovePositiveY()
	s.MovePositiveZ()
	assert.Equal(t, samplerValue(2, 4, 3), s.Voxel())
	s.MoveNegativeY()
	s.MoveNegativeZ()
	s.MoveNegativeZ()
	s.MoveNegativeZ()
	assert.Equal(t, samplerValue(2, 3, 0), s.Voxel())
	assert.Equal(t, samplerValue(2, 3, -1), s.PeekVoxel0px0py1nz())

	require.NoError(t, s.Err())
}

func TestSamplerUnalignedRegion(t *testing.T) {
	// The region ends inside the only chunk, so neighbours past the upper
	// corner share the sampler's chunk but must still read as border.
	v, err := NewPagedVolume[uint8](
		WithChunkSideLength(16),
		WithMaxResidentChunks(4),
		WithRegion(model.NewRegionFromCoords(0, 0, 0, 9, 9, 9)),
		WithBorderValue(uint8(5)),
	)
	require.NoError(t, err)
	require.NoError(t, v.SetVoxel(9, 0, 0, 1))

	got, err := v.Voxel(10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), got)

	s := v.Sampler()
	s.SetPosition(9, 0, 0)
	assert.Equal(t, uint8(1), s.Voxel())
	assert.Equal(t, uint8(5), s.Peek(1, 0, 0))
	assert.Equal(t, uint8(5), s.PeekVoxel1px0py0pz())
	assert.Equal(t, uint8(5), s.Peek(0, -1, 0))
	assert.Equal(t, uint8(0), s.Peek(-1, 0, 0))

	s.MovePositiveX()
	assert.Equal(t, uint8(5), s.Voxel())
	assert.Equal(t, uint8(1), s.Peek(-1, 0, 0))

	s.MoveNegativeX()
	assert.Equal(t, uint8(1), s.Voxel())
	require.NoError(t, s.Err())
}

func TestSamplerReadsRefreshRecency(t *testing.T) {
	v, err := NewPagedVolume[uint8](WithChunkSideLength(4), WithMaxResidentChunks(2))
	require.NoError(t, err)

	s := v.Sampler()
	s.SetPosition(0, 0, 0)
	s.Voxel()

	_, err = v.Voxel(4, 0, 0)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		s.Voxel()
		s.Peek(1, 1, 1)
	}

	// Faulting in a third chunk evicts the one the sampler is not using.
	_, err = v.Voxel(8, 0, 0)
	require.NoError(t, err)
	assert.True(t, resident(v, 0, 0, 0))
	assert.False(t, resident(v, 1, 0, 0))
	assert.True(t, resident(v, 2, 0, 0))
	require.NoError(t, s.Err())
}

func TestSamplerSetVoxel(t *testing.T) {
	v := newSamplerVolume(t, 4)
	s := v.Sampler()

	s.SetPosition(1, 2, 3)
	require.NoError(t, s.SetVoxel(42))
	assert.Equal(t, uint16(42), s.Voxel())

	got, err := v.Voxel(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint16(42), got)

	s.SetPosition(8, 0, 0)
	assert.ErrorIs(t, s.SetVoxel(1), ErrOutOfBounds)
}

func TestSamplerErr(t *testing.T) {
	pg := newCountingPager()
	pg.failIn = true

	v, err := NewPagedVolume[uint16](
		WithChunkSideLength(4),
		WithMaxResidentChunks(4),
		WithPager(pg),
		WithBorderValue(samplerBorder),
	)
	require.NoError(t, err)

	s := v.Sampler()
	s.SetPosition(0, 0, 0)
	assert.Equal(t, samplerBorder, s.Voxel())
	assert.Equal(t, samplerBorder, s.Peek(-1, 0, 0))

	var pe *PagerError
	require.ErrorAs(t, s.Err(), &pe)
	assert.ErrorIs(t, s.Err(), errBoom)

	// The first error sticks even after the pager recovers.
	pg.failIn = false
	assert.Equal(t, uint16(0), s.Voxel())
	assert.ErrorAs(t, s.Err(), &pe)
}

func TestSamplerInt32Edges(t *testing.T) {
	v, err := NewPagedVolume[uint8](WithChunkSideLength(4), WithMaxResidentChunks(4), WithBorderValue(uint8(9)))
	require.NoError(t, err)

	require.NoError(t, v.SetVoxel(math.MaxInt32, math.MaxInt32, math.MaxInt32, 5))
	require.NoError(t, v.SetVoxel(math.MinInt32, 0, 0, 6))

	s := v.Sampler()
	s.SetPosition(math.MaxInt32, math.MaxInt32, math.MaxInt32)
	assert.Equal(t, uint8(5), s.Voxel())
	assert.Equal(t, uint8(9), s.Peek(1, 0, 0))
	assert.Equal(t, uint8(9), s.PeekVoxel1px1py1pz())
	assert.Equal(t, uint8(0), s.PeekVoxel1nx0py0pz())

	s.SetPosition(math.MinInt32, 0, 0)
	assert.Equal(t, uint8(6), s.Voxel())
	assert.Equal(t, uint8(9), s.PeekVoxel1nx0py0pz())
	assert.Equal(t, uint8(0), s.PeekVoxel1px0py0pz())
	require.NoError(t, s.Err())
}
