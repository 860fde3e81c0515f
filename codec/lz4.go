package codec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Block tags for LZ4 output. Incompressible input is stored raw.
const (
	lz4TagRaw   byte = 0
	lz4TagBlock byte = 1
)

// LZ4 is a block compressor backed by github.com/pierrec/lz4/v4.
//
// Format: [tag byte][payload]. Empty input compresses to zero bytes.
type LZ4 struct{}

// NewLZ4 creates an LZ4 compressor.
func NewLZ4() LZ4 { return LZ4{} }

// MaxCompressedSize returns the LZ4 block bound plus the tag byte.
func (LZ4) MaxCompressedSize(uncompressedSize int) int {
	return lz4.CompressBlockBound(uncompressedSize) + 1
}

// Compress compresses src into dst.
func (LZ4) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	if len(dst) < 1 {
		return 0, ErrBufferTooSmall
	}

	n, err := lz4.CompressBlock(src, dst[1:], nil)
	if err == nil && n > 0 && n < len(src) {
		dst[0] = lz4TagBlock
		return n + 1, nil
	}

	// Incompressible (or did not fit): store raw if that fits.
	if len(dst)-1 < len(src) {
		return 0, ErrBufferTooSmall
	}
	dst[0] = lz4TagRaw
	copy(dst[1:], src)
	return len(src) + 1, nil
}

// Decompress decompresses src into dst.
func (LZ4) Decompress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	payload := src[1:]
	switch src[0] {
	case lz4TagRaw:
		if len(dst) < len(payload) {
			return 0, ErrBufferTooSmall
		}
		return copy(dst, payload), nil
	case lz4TagBlock:
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return 0, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: lz4: unknown block tag %d", ErrCorrupt, src[0])
	}
}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }
