// Package model defines the value types shared by every voxgo package.
//
// # Coordinates
//
//   - Vec3: signed 32-bit integer 3-vector, used for voxel and chunk positions
//   - Region: inclusive axis-aligned box of voxels (lower and upper corner)
//
// Region is a plain value. It is copied freely and carries no ownership.
// Methods that change a region (CropTo, Shift, Grow, ...) use pointer
// receivers and modify it in place; query methods use value receivers.
//
//	r := model.NewRegion(model.Vec3{}, model.Vec3{X: 31, Y: 31, Z: 31})
//	r.Shift(model.Vec3{X: 32})
//	r.CropTo(other)
//	if !r.IsValid() {
//	    // no overlap
//	}
//
// MaxRegion spans the whole int32 range and is the "unbounded" sentinel used by
// volumes whose data comes from a pager rather than fixed extents.
package model
