package voxgo

// Named accessors for the 27 cells of the 3x3x3 neighbourhood. The name
// encodes the offset per axis: 1n = -1, 0p = 0, 1p = +1.

// PeekVoxel1nx1ny1nz returns the voxel at offset (-1, -1, -1).
func (s *Sampler[V]) PeekVoxel1nx1ny1nz() V { return s.Peek(-1, -1, -1) }

// PeekVoxel0px1ny1nz returns the voxel at offset (0, -1, -1).
func (s *Sampler[V]) PeekVoxel0px1ny1nz() V { return s.Peek(0, -1, -1) }

// PeekVoxel1px1ny1nz returns the voxel at offset (1, -1, -1).
func (s *Sampler[V]) PeekVoxel1px1ny1nz() V { return s.Peek(1, -1, -1) }

// PeekVoxel1nx0py1nz returns the voxel at offset (-1, 0, -1).
func (s *Sampler[V]) PeekVoxel1nx0py1nz() V { return s.Peek(-1, 0, -1) }

// PeekVoxel0px0py1nz returns the voxel at offset (0, 0, -1).
func (s *Sampler[V]) PeekVoxel0px0py1nz() V { return s.Peek(0, 0, -1) }

// PeekVoxel1px0py1nz returns the voxel at offset (1, 0, -1).
func (s *Sampler[V]) PeekVoxel1px0py1nz() V { return s.Peek(1, 0, -1) }

// PeekVoxel1nx1py1nz returns the voxel at offset (-1, 1, -1).
func (s *Sampler[V]) PeekVoxel1nx1py1nz() V { return s.Peek(-1, 1, -1) }

// PeekVoxel0px1py1nz returns the voxel at offset (0, 1, -1).
func (s *Sampler[V]) PeekVoxel0px1py1nz() V { return s.Peek(0, 1, -1) }

// PeekVoxel1px1py1nz returns the voxel at offset (1, 1, -1).
func (s *Sampler[V]) PeekVoxel1px1py1nz() V { return s.Peek(1, 1, -1) }

// PeekVoxel1nx1ny0pz returns the voxel at offset (-1, -1, 0).
func (s *Sampler[V]) PeekVoxel1nx1ny0pz() V { return s.Peek(-1, -1, 0) }

// PeekVoxel0px1ny0pz returns the voxel at offset (0, -1, 0).
func (s *Sampler[V]) PeekVoxel0px1ny0pz() V { return s.Peek(0, -1, 0) }

// PeekVoxel1px1ny0pz returns the voxel at offset (1, -1, 0).
func (s *Sampler[V]) PeekVoxel1px1ny0pz() V { return s.Peek(1, -1, 0) }

// PeekVoxel1nx0py0pz returns the voxel at offset (-1, 0, 0).
func (s *Sampler[V]) PeekVoxel1nx0py0pz() V { return s.Peek(-1, 0, 0) }

// PeekVoxel0px0py0pz returns the voxel at offset (0, 0, 0).
func (s *Sampler[V]) PeekVoxel0px0py0pz() V { return s.Peek(0, 0, 0) }

// PeekVoxel1px0py0pz returns the voxel at offset (1, 0, 0).
func (s *Sampler[V]) PeekVoxel1px0py0pz() V { return s.Peek(1, 0, 0) }

// PeekVoxel1nx1py0pz returns the voxel at offset (-1, 1, 0).
func (s *Sampler[V]) PeekVoxel1nx1py0pz() V { return s.Peek(-1, 1, 0) }

// PeekVoxel0px1py0pz returns the voxel at offset (0, 1, 0).
func (s *Sampler[V]) PeekVoxel0px1py0pz() V { return s.Peek(0, 1, 0) }

// PeekVoxel1px1py0pz returns the voxel at offset (1, 1, 0).
func (s *Sampler[V]) PeekVoxel1px1py0pz() V { return s.Peek(1, 1, 0) }

// PeekVoxel1nx1ny1pz returns the voxel at offset (-1, -1, 1).
func (s *Sampler[V]) PeekVoxel1nx1ny1pz() V { return s.Peek(-1, -1, 1) }

// PeekVoxel0px1ny1pz returns the voxel at offset (0, -1, 1).
func (s *Sampler[V]) PeekVoxel0px1ny1pz() V { return s.Peek(0, -1, 1) }

// PeekVoxel1px1ny1pz returns the voxel at offset (1, -1, 1).
func (s *Sampler[V]) PeekVoxel1px1ny1pz() V { return s.Peek(1, -1, 1) }

// PeekVoxel1nx0py1pz returns the voxel at offset (-1, 0, 1).
func (s *Sampler[V]) PeekVoxel1nx0py1pz() V { return s.Peek(-1, 0, 1) }

// PeekVoxel0px0py1pz returns the voxel at offset (0, 0, 1).
func (s *Sampler[V]) PeekVoxel0px0py1pz() V { return s.Peek(0, 0, 1) }

// PeekVoxel1px0py1pz returns the voxel at offset (1, 0, 1).
func (s *Sampler[V]) PeekVoxel1px0py1pz() V { return s.Peek(1, 0, 1) }

// PeekVoxel1nx1py1pz returns the voxel at offset (-1, 1, 1).
func (s *Sampler[V]) PeekVoxel1nx1py1pz() V { return s.Peek(-1, 1, 1) }

// PeekVoxel0px1py1pz returns the voxel at offset (0, 1, 1).
func (s *Sampler[V]) PeekVoxel0px1py1pz() V { return s.Peek(0, 1, 1) }

// PeekVoxel1px1py1pz returns the voxel at offset (1, 1, 1).
func (s *Sampler[V]) PeekVoxel1px1py1pz() V { return s.Peek(1, 1, 1) }
