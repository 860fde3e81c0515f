package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// Deflate levels re-exported for configuration.
const (
	DeflateFastest = flate.BestSpeed
	DeflateDefault = flate.DefaultCompression
	DeflateBest    = flate.BestCompression
	DeflateHuffman = flate.HuffmanOnly
)

// Deflate is a raw deflate stream compressor backed by
// github.com/klauspost/compress/flate.
type Deflate struct {
	level   int
	writers sync.Pool
	readers sync.Pool
}

// NewDeflate creates a deflate compressor. Invalid levels fall back to DeflateDefault.
func NewDeflate(level int) *Deflate {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = flate.DefaultCompression
	}
	return &Deflate{level: level}
}

// MaxCompressedSize uses the conservative zlib deflateBound formula.
func (d *Deflate) MaxCompressedSize(uncompressedSize int) int {
	n := uncompressedSize
	return n + (n+7)>>3 + (n+63)>>6 + 11
}

// Compress compresses src into dst.
func (d *Deflate) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	out := &boundedWriter{buf: dst}
	var w *flate.Writer
	if v := d.writers.Get(); v != nil {
		w = v.(*flate.Writer)
		w.Reset(out)
	} else {
		var err error
		if w, err = flate.NewWriter(out, d.level); err != nil {
			return 0, err
		}
	}

	if _, err := w.Write(src); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	// Only writers that finished cleanly go back to the pool.
	d.writers.Put(w)
	return out.n, nil
}

// Decompress decompresses src into dst.
func (d *Deflate) Decompress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	in := bytes.NewReader(src)
	var r io.ReadCloser
	if v := d.readers.Get(); v != nil {
		r = v.(io.ReadCloser)
		if err := r.(flate.Resetter).Reset(in, nil); err != nil {
			return 0, err
		}
	} else {
		r = flate.NewReader(in)
	}
	defer d.readers.Put(r)

	n := 0
	for n < len(dst) {
		m, err := r.Read(dst[n:])
		n += m
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("%w: deflate: %v", ErrCorrupt, err)
		}
	}

	// dst is full; the stream must end here.
	var extra [1]byte
	for {
		m, err := r.Read(extra[:])
		if m > 0 {
			return 0, ErrBufferTooSmall
		}
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("%w: deflate: %v", ErrCorrupt, err)
		}
	}
}

// Name returns "deflate".
func (d *Deflate) Name() string { return "deflate" }

// boundedWriter writes into a fixed slice and fails once it is full.
type boundedWriter struct {
	buf []byte
	n   int
}

func (w *boundedWriter) Write(p []byte) (int, error) {
	if len(p) > len(w.buf)-w.n {
		return 0, ErrBufferTooSmall
	}
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}
