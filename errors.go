package voxgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxgo/model"
	"github.com/hupe1980/voxgo/resource"
)

var (
	// ErrOutOfBounds is returned when writing outside the volume region.
	ErrOutOfBounds = errors.New("voxel position out of bounds")

	// ErrInvalidSideLength is returned for chunk side lengths that are not a
	// power of two in [2, 256].
	ErrInvalidSideLength = errors.New("chunk side length must be a power of two in [2, 256]")

	// ErrInvalidVoxelType is returned when the voxel type contains pointers
	// (or is zero-sized) and therefore cannot be compressed byte for byte.
	ErrInvalidVoxelType = errors.New("voxel type must be plain data")

	// ErrInvalidBorderValue is returned when the border value does not have
	// the volume's voxel type.
	ErrInvalidBorderValue = errors.New("border value type does not match voxel type")

	// ErrInvalidRegion is returned for regions with upper < lower.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidTableSize is returned when the chunk table cannot hold the
	// resident set.
	ErrInvalidTableSize = errors.New("invalid chunk table size")

	// ErrChunkTableFull is returned when the chunk table has no free slot and
	// no chunk can be discarded without losing data.
	ErrChunkTableFull = errors.New("chunk table full")

	// ErrMemoryLimitExceeded is returned when the shared resource controller
	// denies memory for a chunk and nothing can be evicted to make room.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrClosed is returned by operations on a closed volume.
	ErrClosed = errors.New("volume closed")
)

// CompressionError reports a failed compress or decompress of a chunk.
//
// The original underlying error can be accessed via errors.Unwrap.
type CompressionError struct {
	Op    string
	Chunk model.Vec3
	cause error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("%s chunk %s: %v", e.Op, e.Chunk, e.cause)
}

func (e *CompressionError) Unwrap() error { return e.cause }

// PagerError reports a failed PageIn or PageOut.
//
// The original underlying error can be accessed via errors.Unwrap.
type PagerError struct {
	Op     string
	Region model.Region
	cause  error
}

func (e *PagerError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Region, e.cause)
}

func (e *PagerError) Unwrap() error { return e.cause }
