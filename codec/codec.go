// Package codec provides the byte compressors used to shrink chunk payloads
// before they leave the resident set.
//
// A Compressor works on caller-provided buffers so that the volume can size
// scratch space once (MaxCompressedSize) and reuse it for every eviction.
// Compress and Decompress never grow dst; they fail with ErrBufferTooSmall
// instead.
//
// Built-in strategies:
//
//   - LZ4: fast block compression, the default (good for hot chunks)
//   - Zstd: better ratio at higher CPU cost
//   - Deflate: general-purpose deflate stream
//   - RLE: run-length encoding of fixed-width elements, for sparse terrain
//   - None: plain copy
//
// Every codec satisfies Decompress(Compress(x)) == x byte for byte. The
// compressed layout is private to the codec; a pager that stores it must be
// read back with the same codec.
package codec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxgo/model"
)

var (
	// ErrBufferTooSmall is returned when dst cannot hold the output.
	ErrBufferTooSmall = errors.New("codec: destination buffer too small")

	// ErrCorrupt is returned when compressed input cannot be decoded.
	ErrCorrupt = errors.New("codec: corrupt input")
)

// Compressor compresses and decompresses byte buffers.
// Implementations must be safe for concurrent use.
type Compressor interface {
	// MaxCompressedSize returns an upper bound on the compressed size of
	// uncompressedSize input bytes.
	MaxCompressedSize(uncompressedSize int) int
	// Compress writes the compressed form of src into dst and returns the
	// number of bytes written.
	Compress(dst, src []byte) (int, error)
	// Decompress writes the decompressed form of src into dst and returns
	// the number of bytes written.
	Decompress(dst, src []byte) (int, error)
	// Name returns the stable codec name.
	Name() string
}

// Default is the compressor used by volumes that are not given one.
var Default Compressor = NewLZ4()

// ByName returns a built-in compressor by its stable name.
func ByName(name string) (Compressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "lz4":
		return NewLZ4(), true
	case "zstd":
		return NewZstd(ZstdDefault), true
	case "deflate":
		return NewDeflate(DeflateDefault), true
	case "rle":
		return NewRLE(1), true
	default:
		return nil, false
	}
}

// MustCompress is a helper for internal tests/benchmarks.
func MustCompress(c Compressor, src []byte) []byte {
	dst := make([]byte, c.MaxCompressedSize(len(src)))
	n, err := c.Compress(dst, src)
	if err != nil {
		panic(fmt.Errorf("codec %s compress failed: %w", c.Name(), err))
	}
	return dst[:n]
}

// Unimplemented can be embedded by partial Compressor implementations.
// Every method reports model.ErrNotImplemented.
type Unimplemented struct{}

// MaxCompressedSize returns -1.
func (Unimplemented) MaxCompressedSize(int) int { return -1 }

// Compress always fails.
func (Unimplemented) Compress(_, _ []byte) (int, error) {
	return 0, &model.NotImplementedError{Op: "codec.Compress"}
}

// Decompress always fails.
func (Unimplemented) Decompress(_, _ []byte) (int, error) {
	return 0, &model.NotImplementedError{Op: "codec.Decompress"}
}

// Name returns "unimplemented".
func (Unimplemented) Name() string { return "unimplemented" }
