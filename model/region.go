package model

import (
	"fmt"
	"math"
	"math/bits"
)

// Region is an inclusive axis-aligned box of voxels.
//
// A region is valid when Upper >= Lower on every axis. Operations that can
// produce an empty result (CropTo, Shrink) leave an invalid region behind, so
// callers must check IsValid before using it.
type Region struct {
	Lower Vec3
	Upper Vec3
}

// MaxRegion spans the full int32 range. Volumes without explicit extents use it.
var MaxRegion = Region{
	Lower: Splat(math.MinInt32),
	Upper: Splat(math.MaxInt32),
}

// NewRegion creates a region from its two corners.
func NewRegion(lower, upper Vec3) Region {
	return Region{Lower: lower, Upper: upper}
}

// NewRegionFromCoords creates a region from six scalars.
func NewRegionFromCoords(lowerX, lowerY, lowerZ, upperX, upperY, upperZ int32) Region {
	return Region{
		Lower: Vec3{X: lowerX, Y: lowerY, Z: lowerZ},
		Upper: Vec3{X: upperX, Y: upperY, Z: upperZ},
	}
}

// IsValid reports whether Upper >= Lower on every axis.
func (r Region) IsValid() bool {
	return r.Upper.X >= r.Lower.X && r.Upper.Y >= r.Lower.Y && r.Upper.Z >= r.Lower.Z
}

// WidthInVoxels returns the number of voxels along X.
func (r Region) WidthInVoxels() int64 { return int64(r.Upper.X) - int64(r.Lower.X) + 1 }

// HeightInVoxels returns the number of voxels along Y.
func (r Region) HeightInVoxels() int64 { return int64(r.Upper.Y) - int64(r.Lower.Y) + 1 }

// DepthInVoxels returns the number of voxels along Z.
func (r Region) DepthInVoxels() int64 { return int64(r.Upper.Z) - int64(r.Lower.Z) + 1 }

// WidthInCells returns the number of cells between voxel centres along X.
func (r Region) WidthInCells() int64 { return int64(r.Upper.X) - int64(r.Lower.X) }

// HeightInCells returns the number of cells between voxel centres along Y.
func (r Region) HeightInCells() int64 { return int64(r.Upper.Y) - int64(r.Lower.Y) }

// DepthInCells returns the number of cells between voxel centres along Z.
func (r Region) DepthInCells() int64 { return int64(r.Upper.Z) - int64(r.Lower.Z) }

// DimensionsInVoxels returns width, height and depth in voxels.
func (r Region) DimensionsInVoxels() (w, h, d int64) {
	return r.WidthInVoxels(), r.HeightInVoxels(), r.DepthInVoxels()
}

// Volume returns the number of voxels in the region, saturating at
// math.MaxUint64. Invalid regions have volume 0.
func (r Region) Volume() uint64 {
	if !r.IsValid() {
		return 0
	}
	hi, v := bits.Mul64(uint64(r.WidthInVoxels()), uint64(r.HeightInVoxels()))
	if hi != 0 {
		return math.MaxUint64
	}
	hi, v = bits.Mul64(v, uint64(r.DepthInVoxels()))
	if hi != 0 {
		return math.MaxUint64
	}
	return v
}

// Centre returns the voxel closest to the middle of the region (rounded towards Lower).
func (r Region) Centre() Vec3 {
	return Vec3{
		X: int32((int64(r.Lower.X) + int64(r.Upper.X)) >> 1),
		Y: int32((int64(r.Lower.Y) + int64(r.Upper.Y)) >> 1),
		Z: int32((int64(r.Lower.Z) + int64(r.Upper.Z)) >> 1),
	}
}

// ContainsPoint reports whether p lies inside the region shrunk inward by
// boundary voxels on every side.
func (r Region) ContainsPoint(p Vec3, boundary int32) bool {
	return r.ContainsPointInX(p.X, boundary) &&
		r.ContainsPointInY(p.Y, boundary) &&
		r.ContainsPointInZ(p.Z, boundary)
}

// ContainsPointInX tests only the X axis of ContainsPoint.
func (r Region) ContainsPointInX(x, boundary int32) bool {
	return within(x, r.Lower.X, r.Upper.X, boundary)
}

// ContainsPointInY tests only the Y axis of ContainsPoint.
func (r Region) ContainsPointInY(y, boundary int32) bool {
	return within(y, r.Lower.Y, r.Upper.Y, boundary)
}

// ContainsPointInZ tests only the Z axis of ContainsPoint.
func (r Region) ContainsPointInZ(z, boundary int32) bool {
	return within(z, r.Lower.Z, r.Upper.Z, boundary)
}

func within(v, lo, hi, boundary int32) bool {
	// int64 so MaxRegion with a negative boundary does not wrap.
	b := int64(boundary)
	return int64(v) >= int64(lo)+b && int64(v) <= int64(hi)-b
}

// ContainsRegion reports whether o lies entirely inside r shrunk by boundary.
func (r Region) ContainsRegion(o Region, boundary int32) bool {
	return r.ContainsPoint(o.Lower, boundary) && r.ContainsPoint(o.Upper, boundary)
}

// Intersects reports whether r and o share at least one voxel.
func (r Region) Intersects(o Region) bool {
	return r.Upper.X >= o.Lower.X && r.Lower.X <= o.Upper.X &&
		r.Upper.Y >= o.Lower.Y && r.Lower.Y <= o.Upper.Y &&
		r.Upper.Z >= o.Lower.Z && r.Lower.Z <= o.Upper.Z
}

// Equal reports whether both corners match.
func (r Region) Equal(o Region) bool {
	return r.Lower == o.Lower && r.Upper == o.Upper
}

// CropTo intersects r with o in place. The result is invalid when they do not overlap.
func (r *Region) CropTo(o Region) {
	r.Lower = r.Lower.Max(o.Lower)
	r.Upper = r.Upper.Min(o.Upper)
}

// Shift translates both corners by amount.
func (r *Region) Shift(amount Vec3) {
	r.ShiftLowerCorner(amount)
	r.ShiftUpperCorner(amount)
}

// ShiftLowerCorner translates only the lower corner.
func (r *Region) ShiftLowerCorner(amount Vec3) {
	r.Lower = r.Lower.Add(amount)
}

// ShiftUpperCorner translates only the upper corner.
func (r *Region) ShiftUpperCorner(amount Vec3) {
	r.Upper = r.Upper.Add(amount)
}

// Grow moves every face outward by amount voxels.
func (r *Region) Grow(amount int32) {
	r.GrowAxes(Splat(amount))
}

// GrowAxes moves the faces outward by a per-axis amount.
func (r *Region) GrowAxes(amount Vec3) {
	r.Lower = r.Lower.Sub(amount)
	r.Upper = r.Upper.Add(amount)
}

// Shrink moves every face inward by amount voxels.
func (r *Region) Shrink(amount int32) {
	r.ShrinkAxes(Splat(amount))
}

// ShrinkAxes moves the faces inward by a per-axis amount.
func (r *Region) ShrinkAxes(amount Vec3) {
	r.Lower = r.Lower.Add(amount)
	r.Upper = r.Upper.Sub(amount)
}

// AccumulatePoint grows r just enough to contain p.
func (r *Region) AccumulatePoint(p Vec3) {
	r.Lower = r.Lower.Min(p)
	r.Upper = r.Upper.Max(p)
}

// AccumulateRegion grows r just enough to contain o. Invalid regions are ignored.
func (r *Region) AccumulateRegion(o Region) {
	if !o.IsValid() {
		return
	}
	r.Lower = r.Lower.Min(o.Lower)
	r.Upper = r.Upper.Max(o.Upper)
}

func (r Region) String() string {
	return fmt.Sprintf("[%s..%s]", r.Lower, r.Upper)
}
