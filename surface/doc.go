// Package surface extracts triangle meshes from voxel volumes.
//
// ExtractCubic produces the blocky, Minecraft-style surface: one quad for
// every visible voxel face, with coplanar quads of the same material merged
// into larger rectangles.
//
//	mesh, err := surface.ExtractCubic(ctx, vol, model.NewRegionFromCoords(0, 0, 0, 31, 31, 31))
//	if err != nil {
//	    return err
//	}
//	_ = mesh.WriteOBJ(f)
//
// Which faces are needed is decided by a QuadPredicate. DefaultIsQuadNeeded
// separates solid (non-zero) voxels from empty ones; MaterialBoundary also
// separates different materials.
package surface
