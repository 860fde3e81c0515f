package voxgo

import (
	"fmt"
	"math/bits"
	"reflect"
	"unsafe"
)

const (
	minSideLength = 2
	maxSideLength = 256
)

// chunkLayout holds the index math shared by all chunks of one side length.
type chunkLayout struct {
	power  uint
	side   int32
	mask   int32
	voxels int

	// Morton tables: the bits of each axis coordinate spread three apart.
	mortonX []uint32
	mortonY []uint32
	mortonZ []uint32
}

func newChunkLayout(side int32) (*chunkLayout, error) {
	if side < minSideLength || side > maxSideLength || side&(side-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSideLength, side)
	}

	power := uint(bits.TrailingZeros32(uint32(side)))
	l := &chunkLayout{
		power:   power,
		side:    side,
		mask:    side - 1,
		voxels:  1 << (3 * power),
		mortonX: make([]uint32, side),
		mortonY: make([]uint32, side),
		mortonZ: make([]uint32, side),
	}
	for i := uint32(0); i < uint32(side); i++ {
		e := expand3(i)
		l.mortonX[i] = e
		l.mortonY[i] = e << 1
		l.mortonZ[i] = e << 2
	}
	return l, nil
}

// linear returns x + y<<p + z<<2p.
func (l *chunkLayout) linear(x, y, z int32) int {
	return int(x) | int(y)<<l.power | int(z)<<(2*l.power)
}

func (l *chunkLayout) morton(x, y, z int32) int {
	return int(l.mortonX[x] | l.mortonY[y] | l.mortonZ[z])
}

// expand3 spreads the low 10 bits of v so that two zero bits follow each one.
func expand3(v uint32) uint32 {
	v = (v | (v << 16)) & 0xFF0000FF
	v = (v | (v << 8)) & 0x0F00F00F
	v = (v | (v << 4)) & 0xC30C30C3
	v = (v | (v << 2)) & 0x49249249
	return v
}

// voxelSize reports the in-memory size of V, or ErrInvalidVoxelType when V
// holds pointers. Chunk payloads are compressed straight from memory, so the
// voxel type must be plain data.
func voxelSize[V any]() (int, error) {
	t := reflect.TypeFor[V]()
	if t.Size() == 0 || !isPlainData(t) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidVoxelType, t)
	}
	return int(t.Size()), nil
}

func isPlainData(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isPlainData(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isPlainData(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// asBytes reinterprets a voxel slice as its backing bytes (host byte order).
func asBytes[V any](s []V) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}
