package voxgo

import "github.com/hupe1980/voxgo/model"

// chunkSource is what a Sampler needs from its volume.
type chunkSource[V comparable] interface {
	chunkFor(cx, cy, cz int32) (*Chunk[V], error)
	touch(c *Chunk[V])
	setVoxel(x, y, z int32, value V) error
	layoutInfo() *chunkLayout
	bounds() model.Region
	borderValue() V
}

// Sampler is a cursor over a volume with cheap access to the current voxel
// and its 26 neighbours.
//
// Moves that stay inside the current chunk only adjust the in-chunk offset.
// Crossing a chunk boundary costs one chunk lookup on the next read.
//
// Reads never return errors. If a chunk cannot be faulted in, the sampler
// reads the border value and records the error; check Err after a pass,
// the same way as with bufio.Scanner.
type Sampler[V comparable] struct {
	src chunkSource[V]
	pos model.Vec3

	// chunk is the chunk containing pos, or nil when it has to be resolved
	// again (boundary crossed, or pos outside the volume).
	chunk *Chunk[V]
	local model.Vec3

	err error
}

// NewSampler returns a sampler over v positioned at the volume's lower corner.
func NewSampler[V comparable](v *PagedVolume[V]) *Sampler[V] {
	return v.Sampler()
}

// Position returns the current voxel-space position.
func (s *Sampler[V]) Position() model.Vec3 { return s.pos }

// Err returns the first error encountered while reading, if any.
func (s *Sampler[V]) Err() error { return s.err }

// SetPosition moves the sampler to (x, y, z).
func (s *Sampler[V]) SetPosition(x, y, z int32) {
	s.pos = model.Vec3{X: x, Y: y, Z: z}
	m := s.src.layoutInfo().mask
	s.local = model.Vec3{X: x & m, Y: y & m, Z: z & m}
	s.chunk = nil
}

// Voxel returns the voxel at the current position.
func (s *Sampler[V]) Voxel() V {
	if c := s.current(); c != nil {
		return c.Voxel(s.local.X, s.local.Y, s.local.Z)
	}
	return s.src.borderValue()
}

// SetVoxel writes the voxel at the current position.
func (s *Sampler[V]) SetVoxel(value V) error {
	return s.src.setVoxel(s.pos.X, s.pos.Y, s.pos.Z, value)
}

// current returns the resident chunk at pos, or nil outside the volume or
// on error. A cached chunk is stamped as recently used on every read.
func (s *Sampler[V]) current() *Chunk[V] {
	if !s.src.bounds().ContainsPoint(s.pos, 0) {
		s.chunk = nil
		return nil
	}
	if c := s.chunk; c != nil && c.data != nil {
		s.src.touch(c)
		return c
	}
	s.chunk = nil

	p := s.src.layoutInfo().power
	c, err := s.src.chunkFor(s.pos.X>>p, s.pos.Y>>p, s.pos.Z>>p)
	if err != nil {
		s.setErr(err)
		return nil
	}
	s.chunk = c
	return c
}

func (s *Sampler[V]) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// move shifts one axis by ±1, keeping the chunk when the offset stays inside.
func (s *Sampler[V]) move(axis int, delta int32) {
	l := s.src.layoutInfo()
	s.pos = s.pos.WithAxis(axis, s.pos.Axis(axis)+delta)

	off := s.local.Axis(axis) + delta
	if off < 0 || off > l.mask {
		s.chunk = nil
		off &= l.mask
	}
	s.local = s.local.WithAxis(axis, off)
}

// MovePositiveX moves one voxel along +X.
func (s *Sampler[V]) MovePositiveX() { s.move(0, 1) }

// MovePositiveY moves one voxel along +Y.
func (s *Sampler[V]) MovePositiveY() { s.move(1, 1) }

// MovePositiveZ moves one voxel along +Z.
func (s *Sampler[V]) MovePositiveZ() { s.move(2, 1) }

// MoveNegativeX moves one voxel along -X.
func (s *Sampler[V]) MoveNegativeX() { s.move(0, -1) }

// MoveNegativeY moves one voxel along -Y.
func (s *Sampler[V]) MoveNegativeY() { s.move(1, -1) }

// MoveNegativeZ moves one voxel along -Z.
func (s *Sampler[V]) MoveNegativeZ() { s.move(2, -1) }

// Peek returns the voxel at the current position offset by (dx, dy, dz)
// without moving. Offsets are normally in {-1, 0, 1} but any value works.
func (s *Sampler[V]) Peek(dx, dy, dz int32) V {
	l := s.src.layoutInfo()
	lx, ly, lz := s.local.X+dx, s.local.Y+dy, s.local.Z+dz

	if lx >= 0 && lx <= l.mask && ly >= 0 && ly <= l.mask && lz >= 0 && lz <= l.mask {
		// Same chunk, so pos+d cannot wrap.
		target := model.Vec3{X: s.pos.X + dx, Y: s.pos.Y + dy, Z: s.pos.Z + dz}
		if !s.src.bounds().ContainsPoint(target, 0) {
			return s.src.borderValue()
		}
		if c := s.current(); c != nil {
			return c.Voxel(lx, ly, lz)
		}
		if !s.src.bounds().ContainsPoint(s.pos, 0) {
			return s.peekFar(dx, dy, dz)
		}
		return s.src.borderValue()
	}
	return s.peekFar(dx, dy, dz)
}

// peekFar reads a neighbour in another chunk through the volume.
func (s *Sampler[V]) peekFar(dx, dy, dz int32) V {
	// Wrap-around at the int32 edges lands outside any valid region.
	x, y, z := int64(s.pos.X)+int64(dx), int64(s.pos.Y)+int64(dy), int64(s.pos.Z)+int64(dz)
	if x < -1<<31 || x > 1<<31-1 || y < -1<<31 || y > 1<<31-1 || z < -1<<31 || z > 1<<31-1 {
		return s.src.borderValue()
	}

	p := model.Vec3{X: int32(x), Y: int32(y), Z: int32(z)}
	if !s.src.bounds().ContainsPoint(p, 0) {
		return s.src.borderValue()
	}

	l := s.src.layoutInfo()
	c, err := s.src.chunkFor(p.X>>l.power, p.Y>>l.power, p.Z>>l.power)
	if err != nil {
		s.setErr(err)
		return s.src.borderValue()
	}
	return c.Voxel(p.X&l.mask, p.Y&l.mask, p.Z&l.mask)
}
