package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdLevel selects the zstd speed/ratio trade-off.
type ZstdLevel = zstd.EncoderLevel

// Zstd levels re-exported for configuration.
const (
	ZstdFastest = zstd.SpeedFastest
	ZstdDefault = zstd.SpeedDefault
	ZstdBetter  = zstd.SpeedBetterCompression
	ZstdBest    = zstd.SpeedBestCompression
)

// Zstd is a compressor backed by github.com/klauspost/compress/zstd.
// Encoders and decoders are pooled per instance.
type Zstd struct {
	level    zstd.EncoderLevel
	encoders sync.Pool
	decoders sync.Pool
}

// NewZstd creates a zstd compressor at the given level.
func NewZstd(level ZstdLevel) *Zstd {
	return &Zstd{level: level}
}

func (z *Zstd) getEncoder() (*zstd.Encoder, error) {
	if v := z.encoders.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(z.level), zstd.WithEncoderConcurrency(1))
}

func (z *Zstd) getDecoder() (*zstd.Decoder, error) {
	if v := z.decoders.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
}

// MaxCompressedSize follows the reference ZSTD_COMPRESSBOUND plus frame overhead.
func (z *Zstd) MaxCompressedSize(uncompressedSize int) int {
	n := uncompressedSize
	bound := n + n>>8
	if n < 128<<10 {
		bound += ((128 << 10) - n) >> 11
	}
	return bound + 32
}

// Compress compresses src into dst.
func (z *Zstd) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	enc, err := z.getEncoder()
	if err != nil {
		return 0, err
	}
	defer z.encoders.Put(enc)

	// Capping the capacity makes any growth past len(dst) reallocate.
	out := enc.EncodeAll(src, dst[:0:len(dst)])
	if len(out) > len(dst) {
		return 0, ErrBufferTooSmall
	}
	return copy(dst, out), nil
}

// Decompress decompresses src into dst.
func (z *Zstd) Decompress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	dec, err := z.getDecoder()
	if err != nil {
		return 0, err
	}
	defer z.decoders.Put(dec)

	out, err := dec.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return 0, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
	}
	if len(out) > len(dst) {
		return 0, ErrBufferTooSmall
	}
	return copy(dst, out), nil
}

// Name returns "zstd".
func (z *Zstd) Name() string { return "zstd" }
