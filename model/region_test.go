package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_Dimensions(t *testing.T) {
	r := NewRegionFromCoords(-3, 0, 5, 4, 9, 5)

	assert.True(t, r.IsValid())
	assert.Equal(t, int64(8), r.WidthInVoxels())
	assert.Equal(t, int64(10), r.HeightInVoxels())
	assert.Equal(t, int64(1), r.DepthInVoxels())
	assert.Equal(t, int64(7), r.WidthInCells())
	assert.Equal(t, int64(9), r.HeightInCells())
	assert.Equal(t, int64(0), r.DepthInCells())
	assert.Equal(t, uint64(80), r.Volume())
}

func TestRegion_MaxRegion(t *testing.T) {
	assert.True(t, MaxRegion.IsValid())
	assert.Equal(t, int64(math.MaxUint32)+1, MaxRegion.WidthInVoxels())
	assert.Equal(t, uint64(math.MaxUint64), MaxRegion.Volume())
	assert.True(t, MaxRegion.ContainsPoint(Splat(math.MinInt32), 0))
	assert.True(t, MaxRegion.ContainsPoint(Splat(math.MaxInt32), 0))
	assert.True(t, MaxRegion.ContainsPoint(Vec3{}, -5), "negative boundary must not wrap")
}

func TestRegion_ContainsPointBoundaryIsMonotonic(t *testing.T) {
	r := NewRegionFromCoords(0, 0, 0, 15, 15, 15)
	points := []Vec3{{0, 0, 0}, {1, 1, 1}, {2, 7, 13}, {7, 7, 7}, {15, 0, 8}, {16, 3, 3}, {-1, 4, 4}}

	for _, p := range points {
		for b := int32(8); b > 0; b-- {
			if r.ContainsPoint(p, b) {
				assert.True(t, r.ContainsPoint(p, b-1), "point %v boundary %d", p, b-1)
			}
		}
	}

	assert.True(t, r.ContainsPoint(Vec3{0, 0, 0}, 0))
	assert.False(t, r.ContainsPoint(Vec3{0, 0, 0}, 1))
	assert.True(t, r.ContainsPoint(Vec3{1, 1, 14}, 1))
	assert.False(t, r.ContainsPoint(Vec3{16, 0, 0}, 0))
}

func TestRegion_CropTo(t *testing.T) {
	t.Run("Overlap", func(t *testing.T) {
		r := NewRegionFromCoords(0, 0, 0, 10, 10, 10)
		r.CropTo(NewRegionFromCoords(5, -5, 2, 20, 6, 8))
		assert.Equal(t, NewRegionFromCoords(5, 0, 2, 10, 6, 8), r)
		assert.True(t, r.IsValid())
	})

	t.Run("Disjoint", func(t *testing.T) {
		r := NewRegionFromCoords(0, 0, 0, 3, 3, 3)
		r.CropTo(NewRegionFromCoords(10, 10, 10, 12, 12, 12))
		assert.False(t, r.IsValid())
		assert.Equal(t, uint64(0), r.Volume())
	})

	t.Run("Touching", func(t *testing.T) {
		r := NewRegionFromCoords(0, 0, 0, 3, 3, 3)
		r.CropTo(NewRegionFromCoords(3, 3, 3, 9, 9, 9))
		require.True(t, r.IsValid())
		assert.Equal(t, uint64(1), r.Volume())
	})
}

func TestRegion_Shift(t *testing.T) {
	r := NewRegionFromCoords(0, 0, 0, 31, 31, 31)
	r.Shift(Vec3{X: 32, Y: -32})
	assert.Equal(t, NewRegionFromCoords(32, -32, 0, 63, -1, 31), r)

	r.ShiftLowerCorner(Vec3{X: 1})
	r.ShiftUpperCorner(Vec3{Z: -1})
	assert.Equal(t, NewRegionFromCoords(33, -32, 0, 63, -1, 30), r)
}

func TestRegion_GrowShrinkAccumulate(t *testing.T) {
	r := NewRegionFromCoords(0, 0, 0, 4, 4, 4)
	r.Grow(1)
	assert.Equal(t, NewRegionFromCoords(-1, -1, -1, 5, 5, 5), r)
	r.Shrink(3)
	assert.Equal(t, uint64(1), r.Volume())
	r.Shrink(1)
	assert.False(t, r.IsValid())

	r = NewRegion(Vec3{2, 2, 2}, Vec3{2, 2, 2})
	r.AccumulatePoint(Vec3{-1, 5, 2})
	assert.Equal(t, NewRegionFromCoords(-1, 2, 2, 2, 5, 2), r)

	r.AccumulateRegion(NewRegionFromCoords(9, 9, 9, 0, 0, 0)) // invalid, ignored
	assert.Equal(t, NewRegionFromCoords(-1, 2, 2, 2, 5, 2), r)
	r.AccumulateRegion(NewRegionFromCoords(0, 0, 0, 3, 3, 3))
	assert.Equal(t, NewRegionFromCoords(-1, 0, 0, 3, 5, 3), r)
}

func TestRegion_Relations(t *testing.T) {
	outer := NewRegionFromCoords(0, 0, 0, 15, 15, 15)
	inner := NewRegionFromCoords(2, 2, 2, 5, 5, 5)

	assert.True(t, outer.ContainsRegion(inner, 0))
	assert.True(t, outer.ContainsRegion(inner, 2))
	assert.False(t, outer.ContainsRegion(inner, 3))
	assert.True(t, outer.Intersects(inner))
	assert.False(t, outer.Intersects(NewRegionFromCoords(16, 0, 0, 20, 4, 4)))
	assert.Equal(t, Vec3{7, 7, 7}, outer.Centre())
	assert.True(t, inner.Equal(NewRegion(Vec3{2, 2, 2}, Vec3{5, 5, 5})))
	assert.Equal(t, "[(2,2,2)..(5,5,5)]", inner.String())
}

func TestNotImplementedError(t *testing.T) {
	var err error = &NotImplementedError{Op: "pager.PageIn"}
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.Equal(t, "pager.PageIn: not implemented", err.Error())
}
