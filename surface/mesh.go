package surface

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/voxgo/model"
)

// Face identifies the axis-aligned direction a quad faces.
type Face uint8

const (
	FacePositiveX Face = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

func faceFor(axis int, positive bool) Face {
	f := Face(axis * 2)
	if !positive {
		f++
	}
	return f
}

// Axis returns 0, 1 or 2 for X, Y or Z.
func (f Face) Axis() int { return int(f) / 2 }

// Positive reports whether the face points along the positive axis.
func (f Face) Positive() bool { return f%2 == 0 }

// Normal returns the unit normal of the face.
func (f Face) Normal() [3]float32 {
	var n [3]float32
	if f.Positive() {
		n[f.Axis()] = 1
	} else {
		n[f.Axis()] = -1
	}
	return n
}

func (f Face) String() string {
	switch f {
	case FacePositiveX:
		return "+x"
	case FaceNegativeX:
		return "-x"
	case FacePositiveY:
		return "+y"
	case FaceNegativeY:
		return "-y"
	case FacePositiveZ:
		return "+z"
	case FaceNegativeZ:
		return "-z"
	default:
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
}

// Vertex is a mesh vertex. Position is relative to the mesh offset; voxel
// centres sit on integer coordinates, so corners are at half offsets.
type Vertex[V comparable] struct {
	Position [3]float32
	Face     Face
	Material V
}

// Mesh is an indexed triangle mesh. Indices hold three entries per triangle,
// wound counter-clockwise when seen from the side the face points to.
type Mesh[V comparable] struct {
	Vertices []Vertex[V]
	Indices  []uint32
	// Offset is the world position of the extracted region's lower corner.
	Offset model.Vec3
}

// NumTriangles returns the number of triangles.
func (m *Mesh[V]) NumTriangles() int { return len(m.Indices) / 3 }

// NumVertices returns the number of vertices.
func (m *Mesh[V]) NumVertices() int { return len(m.Vertices) }

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh[V]) IsEmpty() bool { return len(m.Indices) == 0 }

// Clear empties the mesh, keeping its buffers for reuse.
func (m *Mesh[V]) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Offset = model.Vec3{}
}

// WorldPosition returns the position of vertex i with the offset applied.
func (m *Mesh[V]) WorldPosition(i int) [3]float32 {
	p := m.Vertices[i].Position
	return [3]float32{
		p[0] + float32(m.Offset.X),
		p[1] + float32(m.Offset.Y),
		p[2] + float32(m.Offset.Z),
	}
}

// RemoveUnusedVertices drops vertices no triangle refers to and returns how
// many were removed.
func (m *Mesh[V]) RemoveUnusedVertices() int {
	remap := make([]int32, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}
	for _, idx := range m.Indices {
		remap[idx] = 0
	}

	n := 0
	for i, r := range remap {
		if r < 0 {
			continue
		}
		m.Vertices[n] = m.Vertices[i]
		remap[i] = int32(n)
		n++
	}

	removed := len(m.Vertices) - n
	m.Vertices = m.Vertices[:n]
	for i, idx := range m.Indices {
		m.Indices[i] = uint32(remap[idx])
	}
	return removed
}

// Bounds returns the local-space bounding box of the vertices. It returns
// false for a mesh without vertices.
func (m *Mesh[V]) Bounds() (lo, hi [3]float32, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo = [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi = [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range m.Vertices {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], v.Position[a])
			hi[a] = max(hi[a], v.Position[a])
		}
	}
	return lo, hi, true
}

// WriteOBJ writes the mesh in Wavefront OBJ format with world positions and
// one normal per face direction.
func (m *Mesh[V]) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for i := range m.Vertices {
		p := m.WorldPosition(i)
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for f := FacePositiveX; f <= FaceNegativeZ; f++ {
		n := f.Normal()
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		vn := int(m.Vertices[a].Face) + 1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a+1, vn, b+1, vn, c+1, vn)
	}
	return bw.Flush()
}
