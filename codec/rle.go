package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// RLE run-length encodes fixed-width elements. It suits chunks made of long
// homogeneous runs (air, bedrock) and degrades gracefully on noisy data.
//
// Format:
//
//	uvarint(total length)
//	{ uvarint(run) element[ElementSize] }*   // covers the whole elements
//	tail[total % ElementSize]                // raw trailing bytes
type RLE struct {
	elemSize int
}

// NewRLE creates a run-length encoder comparing elements of elemSize bytes.
// Use the voxel size so that multi-byte voxels form runs. Values < 1 mean 1.
func NewRLE(elemSize int) RLE {
	if elemSize < 1 {
		elemSize = 1
	}
	return RLE{elemSize: elemSize}
}

// ElementSize returns the width of a run element in bytes.
func (r RLE) ElementSize() int {
	if r.elemSize < 1 {
		return 1
	}
	return r.elemSize
}

// MaxCompressedSize assumes every element is its own run.
func (r RLE) MaxCompressedSize(uncompressedSize int) int {
	e := r.ElementSize()
	return binary.MaxVarintLen64 + uncompressedSize + (uncompressedSize/e)*binary.MaxVarintLen32
}

// Compress encodes src into dst.
func (r RLE) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	e := r.ElementSize()
	w := boundedWriter{buf: dst}
	var tmp [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(tmp[:], uint64(len(src)))
	if _, err := w.Write(tmp[:n]); err != nil {
		return 0, err
	}

	whole := len(src) - len(src)%e
	for i := 0; i < whole; {
		elem := src[i : i+e]
		run := 1
		for j := i + e; j < whole && run < 1<<31 && bytes.Equal(src[j:j+e], elem); j += e {
			run++
		}

		n = binary.PutUvarint(tmp[:], uint64(run))
		if _, err := w.Write(tmp[:n]); err != nil {
			return 0, err
		}
		if _, err := w.Write(elem); err != nil {
			return 0, err
		}
		i += run * e
	}

	if _, err := w.Write(src[whole:]); err != nil {
		return 0, err
	}
	return w.n, nil
}

// Decompress decodes src into dst.
func (r RLE) Decompress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	e := r.ElementSize()

	total, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, fmt.Errorf("%w: rle: bad length header", ErrCorrupt)
	}
	if total > uint64(len(dst)) {
		return 0, ErrBufferTooSmall
	}
	i := n
	size := int(total)
	whole := size - size%e

	out := 0
	for out < whole {
		run, n := binary.Uvarint(src[i:])
		if n <= 0 {
			return 0, fmt.Errorf("%w: rle: bad varint at %d", ErrCorrupt, i)
		}
		i += n
		if run == 0 || run > uint64((whole-out)/e) {
			return 0, fmt.Errorf("%w: rle: run %d overflows output", ErrCorrupt, run)
		}
		if len(src)-i < e {
			return 0, fmt.Errorf("%w: rle: truncated element at %d", ErrCorrupt, i)
		}
		elem := src[i : i+e]
		i += e
		for k := 0; k < int(run); k++ {
			out += copy(dst[out:out+e], elem)
		}
	}

	tail := size - whole
	if len(src)-i != tail {
		return 0, fmt.Errorf("%w: rle: expected %d tail bytes, have %d", ErrCorrupt, tail, len(src)-i)
	}
	out += copy(dst[out:], src[i:])
	return out, nil
}

// Name returns "rle".
func (r RLE) Name() string { return "rle" }
