package surface

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/voxgo"
	"github.com/hupe1980/voxgo/model"
)

// ErrRegionTooLarge is returned when a slice of the region would not fit the
// per-plane face masks.
var ErrRegionTooLarge = errors.New("surface: region too large")

const maxPlaneCells = 1 << 26

type cell[V comparable] struct {
	material V
	set      bool
}

type vertexKey[V comparable] struct {
	point    int
	material V
}

type extractor[V comparable] struct {
	mesh         *Mesh[V]
	region       model.Region
	sampler      *voxgo.Sampler[V]
	isQuadNeeded QuadPredicate[V]
	merge        bool

	// Per-plane state. w and h are the extents along the in-plane axes.
	w, h  int
	masks [2][]cell[V]
	cache map[vertexKey[V]]uint32
}

// ExtractCubic builds a blocky mesh of the voxels in region.
//
// Every voxel in the region is compared with its +X, +Y and +Z neighbours, so
// the faces on the region's upper sides are included and those on its lower
// sides belong to the region below. Adjacent regions therefore tile without
// duplicate faces. A solid voxel on the region's lower corner gets only its
// three positive faces; shift the lower corner by -1 to close the surface
// there. Vertex positions are relative to region.Lower, which is
// stored as the mesh offset.
//
// An empty region yields an empty mesh. Errors from faulting in chunks are
// returned after the pass.
func ExtractCubic[V comparable](ctx context.Context, vol *voxgo.PagedVolume[V], region model.Region, optFns ...Option) (*Mesh[V], error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	isQuadNeeded := QuadPredicate[V](DefaultIsQuadNeeded[V])
	if o.predicate != nil {
		fn, ok := o.predicate.(QuadPredicate[V])
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrInvalidPredicate, o.predicate)
		}
		isQuadNeeded = fn
	}

	mesh := &Mesh[V]{Offset: region.Lower}
	if !region.IsValid() {
		return mesh, nil
	}

	w, h, d := region.DimensionsInVoxels()
	for _, area := range [][2]int64{{h, d}, {w, d}, {w, h}} {
		if area[0] > maxPlaneCells || area[1] > maxPlaneCells || area[0]*area[1] > maxPlaneCells {
			return nil, fmt.Errorf("%w: %s", ErrRegionTooLarge, region)
		}
	}

	start := time.Now()
	e := &extractor[V]{
		mesh:         mesh,
		region:       region,
		sampler:      vol.Sampler(),
		isQuadNeeded: isQuadNeeded,
		merge:        o.merge,
		cache:        make(map[vertexKey[V]]uint32),
	}
	for axis := 0; axis < 3; axis++ {
		if err := e.sweep(ctx, axis); err != nil {
			return nil, err
		}
	}
	if err := e.sampler.Err(); err != nil {
		return nil, err
	}

	o.metrics.RecordExtraction(mesh.NumTriangles(), time.Since(start))
	o.logger.LogExtraction(ctx, region, mesh.NumVertices(), mesh.NumTriangles())
	return mesh, nil
}

// inPlane returns the two axes spanning a plane perpendicular to axis.
func inPlane(axis int) (u, v int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// sweep visits every plane perpendicular to axis between the region's
// voxels and their positive neighbours.
func (e *extractor[V]) sweep(ctx context.Context, axis int) error {
	u, v := inPlane(axis)
	lower := e.region.Lower
	e.w = int(int64(e.region.Upper.Axis(u)) - int64(lower.Axis(u)) + 1)
	e.h = int(int64(e.region.Upper.Axis(v)) - int64(lower.Axis(v)) + 1)
	for i := range e.masks {
		e.masks[i] = make([]cell[V], e.w*e.h)
	}

	var step [3]int32
	step[axis] = 1
	depth := int64(e.region.Upper.Axis(axis)) - int64(lower.Axis(axis)) + 1

	for k := int64(0); k < depth; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		back := lower.WithAxis(axis, int32(int64(lower.Axis(axis))+k))

		for j := 0; j < e.h; j++ {
			row := back.WithAxis(v, int32(int64(lower.Axis(v))+int64(j)))
			e.sampler.SetPosition(row.X, row.Y, row.Z)
			for i := 0; i < e.w; i++ {
				b := e.sampler.Voxel()
				f := e.sampler.Peek(step[0], step[1], step[2])

				idx := j*e.w + i
				if m, ok := e.isQuadNeeded(b, f); ok {
					e.masks[0][idx] = cell[V]{material: m, set: true}
				} else {
					e.masks[0][idx] = cell[V]{}
				}
				if m, ok := e.isQuadNeeded(f, b); ok {
					e.masks[1][idx] = cell[V]{material: m, set: true}
				} else {
					e.masks[1][idx] = cell[V]{}
				}
				advance(e.sampler, u)
			}
		}

		// The faces lie on the lattice plane between back and back+1.
		plane := float32(k+1) - 0.5
		e.emit(e.masks[0], faceFor(axis, true), plane)
		e.emit(e.masks[1], faceFor(axis, false), plane)
	}
	return nil
}

func advance[V comparable](s *voxgo.Sampler[V], axis int) {
	switch axis {
	case 0:
		s.MovePositiveX()
	case 1:
		s.MovePositiveY()
	default:
		s.MovePositiveZ()
	}
}

// emit turns a face mask into quads, merging runs greedily: first along u,
// then the whole run along v while every covered cell matches.
func (e *extractor[V]) emit(mask []cell[V], face Face, plane float32) {
	clear(e.cache)

	for j := 0; j < e.h; j++ {
		for i := 0; i < e.w; {
			c := mask[j*e.w+i]
			if !c.set {
				i++
				continue
			}

			width, height := 1, 1
			if e.merge {
				for i+width < e.w && mask[j*e.w+i+width] == c {
					width++
				}
			grow:
				for j+height < e.h {
					row := (j + height) * e.w
					for k := i; k < i+width; k++ {
						if mask[row+k] != c {
							break grow
						}
					}
					height++
				}
			}

			for jj := j; jj < j+height; jj++ {
				for k := i; k < i+width; k++ {
					mask[jj*e.w+k] = cell[V]{}
				}
			}
			e.addQuad(face, plane, i, j, width, height, c.material)
			i += width
		}
	}
}

func (e *extractor[V]) addQuad(face Face, plane float32, i, j, width, height int, material V) {
	v0 := e.vertex(face, plane, i, j, material)
	v1 := e.vertex(face, plane, i+width, j, material)
	v2 := e.vertex(face, plane, i+width, j+height, material)
	v3 := e.vertex(face, plane, i, j+height, material)

	// (u, v, normal) is right-handed for X and Z planes and left-handed for Y.
	if (face.Axis() != 1) == face.Positive() {
		e.mesh.Indices = append(e.mesh.Indices, v0, v1, v2, v0, v2, v3)
	} else {
		e.mesh.Indices = append(e.mesh.Indices, v0, v2, v1, v0, v3, v2)
	}
}

// vertex returns the index of the vertex at lattice point (i, j) of the
// current plane, adding it on first use.
func (e *extractor[V]) vertex(face Face, plane float32, i, j int, material V) uint32 {
	key := vertexKey[V]{point: j*(e.w+1) + i, material: material}
	if idx, ok := e.cache[key]; ok {
		return idx
	}

	u, v := inPlane(face.Axis())
	var pos [3]float32
	pos[face.Axis()] = plane
	pos[u] = float32(i) - 0.5
	pos[v] = float32(j) - 0.5

	idx := uint32(len(e.mesh.Vertices))
	e.mesh.Vertices = append(e.mesh.Vertices, Vertex[V]{Position: pos, Face: face, Material: material})
	e.cache[key] = idx
	return idx
}
